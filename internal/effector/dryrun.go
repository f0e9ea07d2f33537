package effector

import (
	"context"
	"log/slog"

	"ratebridge/internal/logging"
)

// DryRun logs each would-be submission without touching the destination.
type DryRun struct {
	logger *slog.Logger
}

// NewDryRun builds a rehearsal effector.
func NewDryRun(logger *slog.Logger) *DryRun {
	return &DryRun{logger: logging.NewComponentLogger(logger, "effector")}
}

// Rate reports success without side effects.
func (d *DryRun) Rate(ctx context.Context, targetID string, rating int) (Outcome, error) {
	d.logger.Info("dry run, rating not submitted",
		logging.String(logging.FieldTargetID, targetID),
		logging.Int("rating", rating))
	return Success, nil
}
