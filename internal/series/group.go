package series

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"ratebridge/internal/logging"
	"ratebridge/internal/ratings"
)

// Group is one detected series with its per-season member records, ordered
// by season number ascending (unnumbered members keep discovery order).
type Group struct {
	BaseTitle              string
	Seasons                []ratings.SourceRating
	RepresentativeTargetID string
	AggregateRating        float64
}

// Result is the post-grouping record stream handed to the matcher.
type Result struct {
	// Records preserves discovery order; each group is collapsed into one
	// synthesized record at its first member's position.
	Records []ratings.SourceRating
	// Groups lists the detected series, including single-season ones.
	Groups []Group
	// Combined counts groups that merged more than one season.
	Combined int
}

// Grouper combines per-season source records before matching.
type Grouper struct {
	logger *slog.Logger
}

// NewGrouper constructs a Grouper. A nil logger disables logging.
func NewGrouper(logger *slog.Logger) *Grouper {
	return &Grouper{logger: logging.NewComponentLogger(logger, "series")}
}

type memberInfo struct {
	record       ratings.SourceRating
	index        int
	seasonNumber int
	base         string
	flagged      bool
}

// Group partitions the source records into series groups and passthroughs.
// Records without a target identifier cannot be grouped by identifier and
// pass through to direct title matching untouched.
func (g *Grouper) Group(records []ratings.SourceRating) Result {
	members := make(map[string][]memberInfo)
	keyOrder := make([]string, 0)
	passthrough := make([]*ratings.SourceRating, len(records))

	for i, record := range records {
		if strings.TrimSpace(record.TargetID) == "" {
			copied := record
			passthrough[i] = &copied
			continue
		}

		details, err := ExtractDetails(record.Title)
		if err != nil {
			g.logger.Warn("season number not parsed",
				logging.String(logging.FieldSourceID, record.SourceID),
				logging.String("title", record.Title),
				logging.Error(err))
		}
		base := details.BaseTitle
		if base == "" {
			base = record.Title
		}
		key := strings.ToLower(strings.TrimSpace(base))

		if _, seen := members[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		members[key] = append(members[key], memberInfo{
			record:       record,
			index:        i,
			seasonNumber: details.SeasonNumber,
			base:         base,
			flagged:      IsSeries(record),
		})
	}

	result := Result{}
	for _, key := range keyOrder {
		infos := members[key]
		isGroup := len(infos) >= 2
		if !isGroup && infos[0].flagged {
			isGroup = true
		}
		if !isGroup {
			copied := infos[0].record
			passthrough[infos[0].index] = &copied
			continue
		}

		group := buildGroup(infos)
		result.Groups = append(result.Groups, group)
		if len(group.Seasons) > 1 {
			result.Combined++
		}

		aggregate := synthesize(group, infos)
		passthrough[infos[0].index] = &aggregate

		g.logger.Info("seasons combined",
			logging.String("base_title", group.BaseTitle),
			logging.Int("seasons", len(group.Seasons)),
			logging.String(logging.FieldTargetID, group.RepresentativeTargetID),
			logging.Float64("aggregate_rating", group.AggregateRating))
	}

	for _, record := range passthrough {
		if record != nil {
			result.Records = append(result.Records, *record)
		}
	}
	return result
}

func buildGroup(infos []memberInfo) Group {
	// Numbered seasons ascending, unnumbered after them in discovery order.
	sorted := make([]memberInfo, len(infos))
	copy(sorted, infos)
	sort.SliceStable(sorted, func(i, j int) bool {
		ni, nj := sorted[i].seasonNumber, sorted[j].seasonNumber
		if ni == 0 || nj == 0 {
			return nj == 0 && ni != 0
		}
		return ni < nj
	})

	seasons := make([]ratings.SourceRating, 0, len(sorted))
	for _, info := range sorted {
		seasons = append(seasons, info.record)
	}

	return Group{
		BaseTitle:              sorted[0].base,
		Seasons:                seasons,
		RepresentativeTargetID: rootTargetID(seasons[0].TargetID),
		AggregateRating:        meanRating(seasons),
	}
}

// synthesize builds the aggregate record emitted in place of the group's
// members. It inherits the first season's year and source id.
func synthesize(group Group, infos []memberInfo) ratings.SourceRating {
	first := group.Seasons[0]

	englishTitle := ""
	if first.EnglishTitle != "" {
		if details, err := ExtractDetails(first.EnglishTitle); err == nil && details.BaseTitle != "" {
			englishTitle = details.BaseTitle
		}
	}

	return ratings.SourceRating{
		Title:        group.BaseTitle,
		EnglishTitle: englishTitle,
		Year:         first.Year,
		SourceID:     first.SourceID,
		TargetID:     group.RepresentativeTargetID,
		Rating:       group.AggregateRating,
		Type:         ratings.TypeSeries,
	}
}

// meanRating averages the rated seasons, rounded to one decimal place.
// Unrated (0) seasons do not drag the mean down; an all-unrated group
// aggregates to 0 and is skipped by the plan builder like any unrated
// record.
func meanRating(seasons []ratings.SourceRating) float64 {
	sum := 0.0
	count := 0
	for _, season := range seasons {
		if !season.Rated() {
			continue
		}
		sum += season.Rating
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(sum/float64(count)*10) / 10
}
