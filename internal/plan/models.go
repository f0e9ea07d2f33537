package plan

import "time"

// Entry is one source record resolved into the plan.
type Entry struct {
	Title        string  `json:"title"`
	EnglishTitle string  `json:"english_title,omitempty"`
	Year         string  `json:"year,omitempty"`
	SourceID     string  `json:"source_id"`
	TargetID     string  `json:"target_id,omitempty"`
	SourceRating float64 `json:"source_rating"`
	TargetRating int     `json:"target_rating,omitempty"`
	// MatchScore is 1.0 for identifier matches and the similarity score
	// for title matches; 0 for unmatched entries.
	MatchScore float64 `json:"match_score,omitempty"`
	// MatchedTitle is the catalog title a fuzzy match resolved to.
	MatchedTitle string `json:"matched_title,omitempty"`
	// ExistingRating is the destination's current rating for entries the
	// catalog already carries.
	ExistingRating int `json:"existing_rating,omitempty"`
}

// Stats summarizes how the source records resolved.
type Stats struct {
	TotalSource               int `json:"total_source"`
	TotalTarget               int `json:"total_target"`
	MatchedWithExistingTarget int `json:"matched_with_existing_target"`
	HasIDToMigrate            int `json:"has_id_to_migrate"`
	MatchedByTitle            int `json:"matched_by_title"`
	NotMatched                int `json:"not_matched"`
	TVSeriesCombined          int `json:"tv_series_combined"`
	// RatingDistribution counts every converted rating, migratable and
	// already rated, keyed by the converted target value.
	RatingDistribution map[int]int `json:"rating_distribution,omitempty"`
}

// Plan is the persisted outcome of a build.
type Plan struct {
	GeneratedAt  time.Time `json:"generated_at"`
	ToMigrate    []Entry   `json:"to_migrate"`
	AlreadyRated []Entry   `json:"already_rated"`
	NotMatched   []Entry   `json:"not_matched"`
	Stats        Stats     `json:"stats"`
}

// Pending counts the entries still to apply.
func (p *Plan) Pending() int {
	return len(p.ToMigrate)
}
