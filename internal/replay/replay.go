package replay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ratebridge/internal/effector"
	"ratebridge/internal/journal"
	"ratebridge/internal/logging"
	"ratebridge/internal/plan"
	"ratebridge/internal/progress"
	"ratebridge/internal/services"
)

// Options tunes a replay run.
type Options struct {
	// SessionID labels the run in the journal; a fresh one is generated
	// when empty.
	SessionID string
	// MaxRetries bounds the attempts per entry, including the first.
	MaxRetries int
	// BackoffBase is the delay before the second attempt; it doubles per
	// retry up to BackoffCap.
	BackoffBase time.Duration
	BackoffCap  time.Duration
	// MaxPerSession stops the run after this many applied entries; 0
	// means unlimited.
	MaxPerSession int
	// EntryDelay paces consecutive submissions so the destination is not
	// hammered.
	EntryDelay time.Duration
	// Resume skips entries the progress file already records.
	Resume bool
}

// Summary is the outcome of one run.
type Summary struct {
	SessionID    string
	Succeeded    int
	AlreadyRated int
	NotFound     int
	Failed       int
	Skipped      int
}

// Applied counts the entries this run settled, skips excluded.
func (s Summary) Applied() int {
	return s.Succeeded + s.AlreadyRated + s.NotFound + s.Failed
}

// Replayer walks a plan's migratable entries through an effector.
type Replayer struct {
	effector effector.Effector
	progress *progress.Store
	journal  *journal.Store
	logger   *slog.Logger
	opts     Options
}

// New constructs a Replayer. The journal may be nil when no audit trail is
// wanted; the progress store is required.
func New(eff effector.Effector, store *progress.Store, jnl *journal.Store, logger *slog.Logger, opts Options) (*Replayer, error) {
	if eff == nil {
		return nil, services.Wrap(services.ErrConfiguration, "replay", "new",
			"effector is required", nil)
	}
	if store == nil {
		return nil, services.Wrap(services.ErrConfiguration, "replay", "new",
			"progress store is required", nil)
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Replayer{
		effector: eff,
		progress: store,
		journal:  jnl,
		logger:   logging.NewComponentLogger(logger, "replay"),
		opts:     opts,
	}, nil
}

// Run applies the plan's pending entries in order. Cancellation is honored
// between entries and during backoff waits; the summary covers whatever was
// settled before the stop.
func (r *Replayer) Run(ctx context.Context, p *plan.Plan) (Summary, error) {
	summary := Summary{SessionID: r.opts.SessionID}

	if r.journal != nil {
		if err := r.journal.BeginSession(ctx, r.opts.SessionID, len(p.ToMigrate)); err != nil {
			return summary, err
		}
	}
	runErr := r.run(ctx, p, &summary)
	if r.journal != nil {
		finishErr := r.journal.FinishSession(context.WithoutCancel(ctx), r.opts.SessionID,
			summary.Succeeded, summary.AlreadyRated, summary.NotFound, summary.Failed, summary.Skipped)
		if runErr == nil {
			runErr = finishErr
		}
	}

	r.logger.Info("run finished",
		logging.String(logging.FieldSessionID, summary.SessionID),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("already_rated", summary.AlreadyRated),
		logging.Int("not_found", summary.NotFound),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped))
	return summary, runErr
}

func (r *Replayer) run(ctx context.Context, p *plan.Plan, summary *Summary) error {
	paced := false
	for _, entry := range p.ToMigrate {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.opts.MaxPerSession > 0 && summary.Applied() >= r.opts.MaxPerSession {
			r.logger.Info("session cap reached",
				logging.Int("max_per_session", r.opts.MaxPerSession))
			return nil
		}
		if r.opts.Resume && r.progress.IsProcessed(entry.TargetID) {
			summary.Skipped++
			continue
		}

		if paced && r.opts.EntryDelay > 0 {
			if err := sleepCtx(ctx, r.opts.EntryDelay); err != nil {
				return err
			}
		}
		paced = true

		if err := r.applyEntry(ctx, entry, summary); err != nil {
			return err
		}
	}
	return nil
}

// applyEntry drives one entry through the retry loop. Only journal and
// progress persistence errors abort the run; effector failures are counted
// and the run moves on.
func (r *Replayer) applyEntry(ctx context.Context, entry plan.Entry, summary *Summary) error {
	for attempt := 1; ; attempt++ {
		outcome, attemptErr := r.effector.Rate(ctx, entry.TargetID, entry.TargetRating)
		if err := r.recordAttempt(ctx, entry, attempt, outcome, attemptErr); err != nil {
			return err
		}

		switch outcome {
		case effector.Success:
			summary.Succeeded++
			return r.markProcessed(entry)
		case effector.AlreadyRated:
			summary.AlreadyRated++
			return r.markProcessed(entry)
		case effector.NotFound:
			summary.NotFound++
			r.logger.Warn("target not found",
				logging.String(logging.FieldTargetID, entry.TargetID),
				logging.String("title", entry.Title))
			return nil
		}

		if attempt >= r.opts.MaxRetries {
			summary.Failed++
			r.logger.Error("entry failed after retries",
				logging.String(logging.FieldTargetID, entry.TargetID),
				logging.Int("attempts", attempt),
				logging.Error(attemptErr))
			return nil
		}

		delay := backoffDelay(r.opts.BackoffBase, r.opts.BackoffCap, attempt)
		r.logger.Warn("transient failure, retrying",
			logging.String(logging.FieldTargetID, entry.TargetID),
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
			logging.Error(attemptErr))
		if err := sleepCtx(ctx, delay); err != nil {
			summary.Failed++
			return err
		}
	}
}

func (r *Replayer) markProcessed(entry plan.Entry) error {
	if err := r.progress.MarkProcessed(entry.TargetID); err != nil {
		return fmt.Errorf("persist progress for %s: %w", entry.TargetID, err)
	}
	return nil
}

func (r *Replayer) recordAttempt(ctx context.Context, entry plan.Entry, attempt int, outcome effector.Outcome, attemptErr error) error {
	if r.journal == nil {
		return nil
	}
	record := journal.Attempt{
		SessionID: r.opts.SessionID,
		TargetID:  entry.TargetID,
		Rating:    entry.TargetRating,
		Attempt:   attempt,
		Outcome:   outcome.String(),
	}
	if attemptErr != nil {
		record.Error = attemptErr.Error()
	}
	if err := r.journal.RecordAttempt(ctx, record); err != nil {
		return fmt.Errorf("journal attempt for %s: %w", entry.TargetID, err)
	}
	return nil
}

// backoffDelay doubles the base per completed attempt, capped.
func backoffDelay(base, ceiling time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if ceiling > 0 && delay >= ceiling {
			return ceiling
		}
	}
	if ceiling > 0 && delay > ceiling {
		return ceiling
	}
	return delay
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
