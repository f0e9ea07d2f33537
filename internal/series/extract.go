package series

import (
	"strings"

	"ratebridge/internal/ratings"
)

// danglingSeparators are trimmed from a base title after the season marker
// is stripped ("Fargo: Season 2" leaves "Fargo:").
const danglingSeparators = " :-–—·"

// Details holds the outcome of stripping season markers from a title.
// SeasonNumber is 0 when the marker carried no parseable number.
type Details struct {
	BaseTitle    string
	SeasonNumber int
}

// IsSeries reports whether the record denotes one season of a multi-season
// series: a season marker in either title, an explicit series type from the
// scraper, or an episode-level target identifier (sub-path under the show's
// root id).
func IsSeries(record ratings.SourceRating) bool {
	if MatchesTitle(record.Title) || MatchesTitle(record.EnglishTitle) {
		return true
	}
	if record.Type == ratings.TypeSeries {
		return true
	}
	return strings.Contains(record.TargetID, "/")
}

// ExtractDetails strips all recognized season markers from the title and
// parses the season number. The base title is always usable; the returned
// error only flags an unsupported compound CJK numeral, in which case the
// season number stays 0.
func ExtractDetails(title string) (Details, error) {
	base := title
	seasonNumber := 0
	var numberErr error

	for _, pattern := range numberedSeasonPatterns() {
		match := pattern.FindStringSubmatch(base)
		if match == nil {
			continue
		}
		if seasonNumber == 0 {
			number, err := parseSeasonNumber(match[1])
			if err != nil {
				numberErr = err
			} else {
				seasonNumber = number
			}
		}
		base = strings.Replace(base, match[0], "", 1)
	}

	base = cjkFinalePattern.ReplaceAllString(base, "")
	base = completeSetPattern.ReplaceAllString(base, "")
	base = strings.Trim(strings.TrimSpace(base), danglingSeparators)
	base = strings.TrimSpace(base)

	return Details{BaseTitle: base, SeasonNumber: seasonNumber}, numberErr
}

// rootTargetID truncates an episode-level identifier ("tt123/episodes/2") to
// the show's root identifier ("tt123").
func rootTargetID(targetID string) string {
	if idx := strings.Index(targetID, "/"); idx >= 0 {
		return targetID[:idx]
	}
	return targetID
}
