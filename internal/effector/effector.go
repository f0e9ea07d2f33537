package effector

import "context"

// Outcome classifies one rating attempt.
type Outcome int

const (
	// Success means the rating was applied.
	Success Outcome = iota
	// AlreadyRated means the destination already carried a rating; the
	// entry counts as done without a write.
	AlreadyRated
	// NotFound means the identifier does not exist on the destination;
	// retrying cannot help.
	NotFound
	// TransientError means the attempt failed in a way a retry may fix.
	TransientError
)

// String returns the journal label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case AlreadyRated:
		return "already_rated"
	case NotFound:
		return "not_found"
	case TransientError:
		return "transient_error"
	default:
		return "unknown"
	}
}

// Effector applies a single rating to the destination site.
type Effector interface {
	Rate(ctx context.Context, targetID string, rating int) (Outcome, error)
}

// Func adapts a plain function to the Effector interface, primarily for
// tests.
type Func func(ctx context.Context, targetID string, rating int) (Outcome, error)

// Rate implements Effector.
func (f Func) Rate(ctx context.Context, targetID string, rating int) (Outcome, error) {
	return f(ctx, targetID, rating)
}
