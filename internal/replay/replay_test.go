package replay

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ratebridge/internal/effector"
	"ratebridge/internal/journal"
	"ratebridge/internal/logging"
	"ratebridge/internal/plan"
	"ratebridge/internal/progress"
	"ratebridge/internal/services"
)

type recordingEffector struct {
	mu       sync.Mutex
	calls    []string
	outcomes map[string][]effector.Outcome
}

func (r *recordingEffector) Rate(ctx context.Context, targetID string, rating int) (effector.Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, targetID)

	queue := r.outcomes[targetID]
	if len(queue) == 0 {
		return effector.Success, nil
	}
	outcome := queue[0]
	r.outcomes[targetID] = queue[1:]
	if outcome == effector.TransientError {
		return outcome, services.Wrap(services.ErrTransient, "effector", "rate", "simulated failure", nil)
	}
	return outcome, nil
}

func (r *recordingEffector) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func testPlan(ids ...string) *plan.Plan {
	p := &plan.Plan{}
	for _, id := range ids {
		p.ToMigrate = append(p.ToMigrate, plan.Entry{
			Title:        "Title " + id,
			SourceID:     "s-" + id,
			TargetID:     id,
			SourceRating: 4,
			TargetRating: 8,
		})
	}
	return p
}

func openProgress(t *testing.T, dir string) *progress.Store {
	t.Helper()
	store, err := progress.Open(filepath.Join(dir, "progress.json"))
	if err != nil {
		t.Fatalf("open progress: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newReplayer(t *testing.T, eff effector.Effector, store *progress.Store, jnl *journal.Store, opts Options) *Replayer {
	t.Helper()
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	replayer, err := New(eff, store, jnl, logging.NewNop(), opts)
	if err != nil {
		t.Fatalf("new replayer: %v", err)
	}
	return replayer
}

func TestRunAppliesEveryEntry(t *testing.T) {
	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{}}
	store := openProgress(t, t.TempDir())

	summary, err := newReplayer(t, eff, store, nil, Options{Resume: true}).
		Run(context.Background(), testPlan("tt1", "tt2", "tt3"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Succeeded != 3 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if eff.callCount() != 3 {
		t.Fatalf("effector calls = %d, want 3", eff.callCount())
	}
	if store.Count() != 3 {
		t.Fatalf("progress count = %d, want 3", store.Count())
	}
	if summary.SessionID == "" {
		t.Fatal("session id must be generated")
	}
}

func TestRunSecondPassSkipsEverything(t *testing.T) {
	dir := t.TempDir()
	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{}}
	first := openProgress(t, dir)
	p := testPlan("tt1", "tt2")

	if _, err := newReplayer(t, eff, first, nil, Options{Resume: true}).
		Run(context.Background(), p); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close progress: %v", err)
	}

	second, err := progress.Open(filepath.Join(dir, "progress.json"))
	if err != nil {
		t.Fatalf("reopen progress: %v", err)
	}
	defer second.Close()

	before := eff.callCount()
	summary, err := newReplayer(t, eff, second, nil, Options{Resume: true}).
		Run(context.Background(), p)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if eff.callCount() != before {
		t.Fatalf("second run must not touch the effector, calls went %d -> %d", before, eff.callCount())
	}
	if summary.Skipped != 2 || summary.Applied() != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunRetriesTransientThenSucceeds(t *testing.T) {
	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{
		"tt1": {effector.TransientError, effector.TransientError, effector.Success},
	}}
	store := openProgress(t, t.TempDir())

	summary, err := newReplayer(t, eff, store, nil, Options{
		Resume:      true,
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
		BackoffCap:  2 * time.Millisecond,
	}).Run(context.Background(), testPlan("tt1"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if eff.callCount() != 3 {
		t.Fatalf("effector calls = %d, want 3", eff.callCount())
	}
}

func TestRunExhaustsRetriesAndMovesOn(t *testing.T) {
	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{
		"tt1": {effector.TransientError, effector.TransientError, effector.TransientError},
	}}
	store := openProgress(t, t.TempDir())

	summary, err := newReplayer(t, eff, store, nil, Options{
		Resume:      true,
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
	}).Run(context.Background(), testPlan("tt1", "tt2"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if store.IsProcessed("tt1") {
		t.Fatal("failed entry must not be marked processed")
	}
	if !store.IsProcessed("tt2") {
		t.Fatal("later entries must still be applied")
	}
}

func TestRunCountsNotFoundWithoutProgress(t *testing.T) {
	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{
		"tt1": {effector.NotFound},
	}}
	store := openProgress(t, t.TempDir())

	summary, err := newReplayer(t, eff, store, nil, Options{Resume: true}).
		Run(context.Background(), testPlan("tt1"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.NotFound != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if store.IsProcessed("tt1") {
		t.Fatal("not-found entries stay unprocessed so a later catalog fix can retry them")
	}
}

func TestRunHonorsSessionCap(t *testing.T) {
	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{}}
	store := openProgress(t, t.TempDir())

	summary, err := newReplayer(t, eff, store, nil, Options{Resume: true, MaxPerSession: 2}).
		Run(context.Background(), testPlan("tt1", "tt2", "tt3", "tt4"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Succeeded != 2 {
		t.Fatalf("cap ignored: %+v", summary)
	}
	if eff.callCount() != 2 {
		t.Fatalf("effector calls = %d, want 2", eff.callCount())
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	eff := effector.Func(func(ctx context.Context, targetID string, rating int) (effector.Outcome, error) {
		cancel()
		return effector.Success, nil
	})
	store := openProgress(t, t.TempDir())

	summary, err := newReplayer(t, eff, store, nil, Options{Resume: true}).
		Run(ctx, testPlan("tt1", "tt2", "tt3"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	// The in-flight entry completes; cancellation takes effect between
	// entries.
	if summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunWritesJournal(t *testing.T) {
	dir := t.TempDir()
	jnl, err := journal.Open(filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer jnl.Close()

	eff := &recordingEffector{outcomes: map[string][]effector.Outcome{
		"tt1": {effector.TransientError, effector.Success},
	}}
	store := openProgress(t, dir)

	summary, err := newReplayer(t, eff, store, jnl, Options{
		SessionID:   "run-journal",
		Resume:      true,
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
	}).Run(context.Background(), testPlan("tt1"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Succeeded != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	attempts, err := jnl.Attempts(context.Background(), "run-journal")
	if err != nil {
		t.Fatalf("list attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(attempts))
	}
	if attempts[0].Outcome != "transient_error" || attempts[1].Outcome != "success" {
		t.Fatalf("unexpected attempt outcomes: %+v", attempts)
	}

	sessions, err := jnl.Sessions(context.Background(), 1)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if !sessions[0].Finished() || sessions[0].Succeeded != 1 {
		t.Fatalf("unexpected session summary: %+v", sessions[0])
	}
}
