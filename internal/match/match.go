package match

import (
	"strings"

	"ratebridge/internal/ratings"
	"ratebridge/internal/textutil"
)

// Policy tunes candidate scoring. Threshold is the minimum combined score
// for a fuzzy match to count; YearBonus is added when release years agree.
type Policy struct {
	Threshold float64
	YearBonus float64
}

// DefaultPolicy mirrors the shipped configuration defaults.
func DefaultPolicy() Policy {
	return Policy{Threshold: 0.8, YearBonus: 0.2}
}

// Match is one resolved pairing between a source record and a catalog entry.
type Match struct {
	Target *ratings.TargetRating
	Score  float64
	// Exact is true when the pairing came from the scraped target
	// identifier rather than title similarity.
	Exact bool
}

// BestMatch finds the catalog entry for a source record, or nil when
// nothing clears the policy threshold. An exact identifier match scores
// 1.0 and short-circuits the fuzzy scan. Ties keep the earliest catalog
// entry.
func BestMatch(query ratings.SourceRating, catalog []ratings.TargetRating, policy Policy) *Match {
	if queryID := strings.TrimSpace(query.TargetID); queryID != "" {
		for i := range catalog {
			if catalog[i].TargetID == queryID {
				return &Match{Target: &catalog[i], Score: 1.0, Exact: true}
			}
		}
	}

	queryTitle := textutil.Normalize(query.Title)
	queryEnglish := textutil.Normalize(query.EnglishTitle)
	if queryTitle == "" && queryEnglish == "" {
		return nil
	}

	var best *Match
	for i := range catalog {
		candidate := &catalog[i]
		score := scoreCandidate(queryTitle, queryEnglish, query.Year, candidate, policy)
		if score < policy.Threshold {
			continue
		}
		if best == nil || score > best.Score {
			best = &Match{Target: candidate, Score: score}
		}
	}
	return best
}

// scoreCandidate combines the better of the two title similarities with the
// year bonus, capped at 1.0.
func scoreCandidate(queryTitle, queryEnglish, queryYear string, candidate *ratings.TargetRating, policy Policy) float64 {
	candidateTitle := textutil.Normalize(candidate.Title)
	if candidateTitle == "" {
		return 0
	}

	score := 0.0
	if queryTitle != "" {
		score = textutil.Ratio(queryTitle, candidateTitle)
	}
	if queryEnglish != "" {
		if english := textutil.Ratio(queryEnglish, candidateTitle); english > score {
			score = english
		}
	}

	if score > 0 && yearsAgree(queryYear, candidate.Year) {
		score += policy.YearBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func yearsAgree(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && a == b
}
