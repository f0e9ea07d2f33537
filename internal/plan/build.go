package plan

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"ratebridge/internal/logging"
	"ratebridge/internal/match"
	"ratebridge/internal/ratings"
	"ratebridge/internal/series"
)

// Options tunes a plan build.
type Options struct {
	Policy match.Policy
	// GroupSeries combines per-season records before matching.
	GroupSeries bool
}

// Builder resolves source records against the destination catalog.
type Builder struct {
	logger  *slog.Logger
	grouper *series.Grouper
}

// NewBuilder constructs a Builder. A nil logger disables logging.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{
		logger:  logging.NewComponentLogger(logger, "plan"),
		grouper: series.NewGrouper(logger),
	}
}

// Build resolves every rated source record into exactly one of the plan's
// three buckets. Unrated records are dropped up front; they carry nothing
// to migrate. The migratable entries come out sorted by target rating
// descending, ties in resolution order.
func (b *Builder) Build(source []ratings.SourceRating, catalog []ratings.TargetRating, opts Options) (*Plan, error) {
	result := Plan{
		GeneratedAt: time.Now().UTC(),
		Stats: Stats{
			TotalSource:        len(source),
			TotalTarget:        len(catalog),
			RatingDistribution: make(map[int]int),
		},
	}

	records := source
	if opts.GroupSeries {
		grouped := b.grouper.Group(source)
		records = grouped.Records
		result.Stats.TVSeriesCombined = grouped.Combined
	}

	for _, record := range records {
		if !record.Rated() {
			continue
		}

		resolved := match.BestMatch(record, catalog, opts.Policy)
		switch {
		case resolved != nil && resolved.Exact:
			entry, err := alreadyRatedEntry(record, resolved)
			if err != nil {
				return nil, err
			}
			result.Stats.MatchedWithExistingTarget++
			result.Stats.RatingDistribution[entry.TargetRating]++
			result.AlreadyRated = append(result.AlreadyRated, entry)

		case strings.TrimSpace(record.TargetID) != "":
			// Identifier known but absent from the catalog: migrate it
			// directly, no title matching needed.
			entry, err := migratableEntry(record)
			if err != nil {
				return nil, err
			}
			entry.MatchScore = 1.0
			result.Stats.HasIDToMigrate++
			result.Stats.RatingDistribution[entry.TargetRating]++
			result.ToMigrate = append(result.ToMigrate, entry)

		case resolved != nil:
			entry, err := alreadyRatedEntry(record, resolved)
			if err != nil {
				return nil, err
			}
			result.Stats.MatchedByTitle++
			result.Stats.RatingDistribution[entry.TargetRating]++
			result.AlreadyRated = append(result.AlreadyRated, entry)

		default:
			result.Stats.NotMatched++
			result.NotMatched = append(result.NotMatched, Entry{
				Title:        record.Title,
				EnglishTitle: record.EnglishTitle,
				Year:         record.Year,
				SourceID:     record.SourceID,
				SourceRating: record.Rating,
			})
		}
	}

	sort.SliceStable(result.ToMigrate, func(i, j int) bool {
		return result.ToMigrate[i].TargetRating > result.ToMigrate[j].TargetRating
	})

	b.logger.Info("plan built",
		logging.Int("to_migrate", len(result.ToMigrate)),
		logging.Int("already_rated", len(result.AlreadyRated)),
		logging.Int("not_matched", len(result.NotMatched)),
		logging.Int("series_combined", result.Stats.TVSeriesCombined))
	return &result, nil
}

func migratableEntry(record ratings.SourceRating) (Entry, error) {
	converted, err := ratings.ConvertAverage(record.Rating)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Title:        record.Title,
		EnglishTitle: record.EnglishTitle,
		Year:         record.Year,
		SourceID:     record.SourceID,
		TargetID:     record.TargetID,
		SourceRating: record.Rating,
		TargetRating: converted,
	}, nil
}

// alreadyRatedEntry still converts the source rating so the plan can show
// what the destination rating would have been next to the one it carries.
func alreadyRatedEntry(record ratings.SourceRating, resolved *match.Match) (Entry, error) {
	converted, err := ratings.ConvertAverage(record.Rating)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Title:          record.Title,
		EnglishTitle:   record.EnglishTitle,
		Year:           record.Year,
		SourceID:       record.SourceID,
		TargetID:       resolved.Target.TargetID,
		SourceRating:   record.Rating,
		TargetRating:   converted,
		MatchScore:     resolved.Score,
		MatchedTitle:   resolved.Target.Title,
		ExistingRating: resolved.Target.Rating,
	}, nil
}
