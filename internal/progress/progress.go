package progress

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/gofrs/flock"

	"ratebridge/internal/fileutil"
)

type fileState struct {
	ProcessedTargetIDs []string `json:"processed_target_ids"`
}

// Store is the on-disk record of processed target identifiers.
type Store struct {
	path string
	lock *flock.Flock

	mu        sync.Mutex
	order     []string
	processed map[string]struct{}
}

// Open loads the progress file (an absent file means a fresh run) and takes
// an exclusive lock beside it. A second concurrent run fails fast instead
// of corrupting the record.
func Open(path string) (*Store, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire progress lock: %w", err)
	}
	if !ok {
		return nil, errors.New("progress file is locked by another run")
	}

	store := &Store{
		path:      path,
		lock:      lock,
		processed: make(map[string]struct{}),
	}

	var state fileState
	if err := fileutil.ReadJSON(path, &state); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			_ = lock.Unlock()
			return nil, fmt.Errorf("load progress: %w", err)
		}
	}
	for _, id := range state.ProcessedTargetIDs {
		if _, seen := store.processed[id]; seen {
			continue
		}
		store.processed[id] = struct{}{}
		store.order = append(store.order, id)
	}
	return store, nil
}

// IsProcessed reports whether the identifier was applied in this or a
// previous run.
func (s *Store) IsProcessed(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.processed[targetID]
	return ok
}

// MarkProcessed records the identifier and persists the file immediately.
func (s *Store) MarkProcessed(targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.processed[targetID]; !seen {
		s.processed[targetID] = struct{}{}
		s.order = append(s.order, targetID)
	}
	state := fileState{ProcessedTargetIDs: append([]string(nil), s.order...)}
	if err := fileutil.WriteJSONAtomic(s.path, state); err != nil {
		return fmt.Errorf("persist progress: %w", err)
	}
	return nil
}

// Count returns how many identifiers have been applied.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Close releases the lock. The file itself stays for the next run to resume
// from.
func (s *Store) Close() error {
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("release progress lock: %w", err)
	}
	return nil
}
