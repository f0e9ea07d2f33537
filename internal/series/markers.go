package series

import (
	"regexp"
	"strconv"
	"strings"

	"ratebridge/internal/services"
)

// Season markers recognized in scraped titles. CJK forms come from the
// origin site's listings, Latin forms from alternate titles.
var (
	cjkSeasonPattern   = regexp.MustCompile(`第([0-9一二三四五六七八九十]+)[季期]`)
	cjkFinalePattern   = regexp.MustCompile(`完结篇`)
	latinSeasonPattern = regexp.MustCompile(`(?i)\bseason\s*(\d{1,3})\b`)
	latinSeriesPattern = regexp.MustCompile(`(?i)\bseries\s+(\d{1,3})\b`)
	shortSeasonPattern = regexp.MustCompile(`\bS(\d{1,2})\b`)
	completeSetPattern = regexp.MustCompile(`(?i)\bthe complete series\b`)
)

// numberedSeasonPatterns lists the marker forms that capture a season number.
func numberedSeasonPatterns() []*regexp.Regexp {
	return []*regexp.Regexp{
		cjkSeasonPattern,
		latinSeasonPattern,
		latinSeriesPattern,
		shortSeasonPattern,
	}
}

var cjkNumerals = map[rune]int{
	'一': 1, '二': 2, '三': 3, '四': 4, '五': 5,
	'六': 6, '七': 7, '八': 8, '九': 9, '十': 10,
}

// MatchesTitle reports whether the title itself carries a season marker.
func MatchesTitle(title string) bool {
	if strings.TrimSpace(title) == "" {
		return false
	}
	return cjkSeasonPattern.MatchString(title) ||
		cjkFinalePattern.MatchString(title) ||
		latinSeasonPattern.MatchString(title) ||
		latinSeriesPattern.MatchString(title) ||
		shortSeasonPattern.MatchString(title) ||
		completeSetPattern.MatchString(title)
}

// parseSeasonNumber converts a matched season group to its number. Digits
// parse directly; CJK numerals cover 一 through 十. Compound CJK numerals
// (十一 and above) are flagged as unsupported rather than guessed.
func parseSeasonNumber(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if number, err := strconv.Atoi(raw); err == nil {
		return number, nil
	}
	runes := []rune(raw)
	if len(runes) == 1 {
		if number, ok := cjkNumerals[runes[0]]; ok {
			return number, nil
		}
	}
	return 0, services.Wrap(services.ErrValidation, "series", "parse season number",
		"unsupported numeral "+strconv.Quote(raw)+" (only 一 through 十 are mapped)", nil)
}
