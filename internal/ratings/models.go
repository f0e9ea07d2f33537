package ratings

import (
	"strings"

	"ratebridge/internal/services"
)

// TypeSeries marks a source record the scraper already classified as a TV
// series.
const TypeSeries = "series"

// SourceRating is one scraped rating from the origin site. Rating uses the
// source 1-5 integer scale; 0 denotes "no rating".
type SourceRating struct {
	Title        string  `json:"title"`
	EnglishTitle string  `json:"english_title,omitempty"`
	Year         string  `json:"year,omitempty"`
	SourceID     string  `json:"source_id"`
	TargetID     string  `json:"target_id,omitempty"`
	Rating       float64 `json:"rating"`
	Info         string  `json:"info,omitempty"`
	Type         string  `json:"type,omitempty"`
}

// TargetRating is one rating already present on the destination site, on its
// 1-10 integer scale.
type TargetRating struct {
	Title    string `json:"title"`
	Year     string `json:"year,omitempty"`
	TargetID string `json:"target_id"`
	Rating   int    `json:"rating"`
}

// Rated reports whether the record carries an actual rating. Unrated entries
// (rating 0) carry no information to migrate.
func (r SourceRating) Rated() bool {
	return r.Rating > 0
}

// Validate checks the invariants a record must satisfy before it is admitted
// into a plan. Violations carry services.ErrValidation and name the record.
func (r SourceRating) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return services.Wrap(services.ErrValidation, "ratings", "source record",
			"title missing for source_id "+displayID(r.SourceID), nil)
	}
	if strings.TrimSpace(r.SourceID) == "" {
		return services.Wrap(services.ErrValidation, "ratings", "source record",
			"source_id missing for title "+r.Title, nil)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return services.Wrap(services.ErrValidation, "ratings", "source record",
			"rating out of range for source_id "+displayID(r.SourceID), nil)
	}
	return nil
}

// Validate checks the invariants of a catalog record.
func (r TargetRating) Validate() error {
	if strings.TrimSpace(r.TargetID) == "" {
		return services.Wrap(services.ErrValidation, "ratings", "target record",
			"target_id missing for title "+r.Title, nil)
	}
	return nil
}

func displayID(id string) string {
	if strings.TrimSpace(id) == "" {
		return "(unknown)"
	}
	return id
}
