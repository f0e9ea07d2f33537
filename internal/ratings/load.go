package ratings

import (
	"fmt"
	"math"

	"ratebridge/internal/fileutil"
	"ratebridge/internal/services"
)

// LoadSource reads the scraped source export, a UTF-8 JSON array of
// SourceRating objects. Every record is validated; a malformed record fails
// the load with a validation error naming it, since a polluted plan is worse
// than a halted run.
func LoadSource(path string) ([]SourceRating, error) {
	var records []SourceRating
	if err := fileutil.ReadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("load source ratings: %w", err)
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}
		// Scraped ratings are whole star counts; fractions only appear on
		// synthesized aggregates.
		if record.Rating != math.Trunc(record.Rating) {
			return nil, services.Wrap(services.ErrValidation, "ratings", "load source",
				"non-integer rating for source_id "+displayID(record.SourceID), nil)
		}
	}
	return records, nil
}

// LoadTarget reads the destination-site export, a UTF-8 JSON array of
// TargetRating objects.
func LoadTarget(path string) ([]TargetRating, error) {
	var records []TargetRating
	if err := fileutil.ReadJSON(path, &records); err != nil {
		return nil, fmt.Errorf("load target ratings: %w", err)
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return nil, err
		}
	}
	return records, nil
}
