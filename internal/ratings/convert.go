package ratings

import (
	"math"

	"ratebridge/internal/services"
)

// ConvertRating maps a source 1-5 rating to the target 1-10 scale by
// doubling and clamping. Callers must filter unrated (0) records first;
// converting one is a programming error and is rejected.
func ConvertRating(source int) (int, error) {
	if source <= 0 || source > 5 {
		return 0, services.Wrap(services.ErrValidation, "ratings", "convert",
			"source rating outside 1-5", nil)
	}
	return clampTarget(source * 2), nil
}

// ConvertAverage maps an aggregated (possibly fractional) source rating to
// the target scale, rounding half away from zero. Used for TV-series
// aggregates whose rating is a per-season mean.
func ConvertAverage(source float64) (int, error) {
	if source <= 0 || source > 5 {
		return 0, services.Wrap(services.ErrValidation, "ratings", "convert",
			"aggregate rating outside (0,5]", nil)
	}
	return clampTarget(int(math.Round(source * 2))), nil
}

func clampTarget(value int) int {
	if value < 1 {
		return 1
	}
	if value > 10 {
		return 10
	}
	return value
}
