package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed attempt journal.
type Store struct {
	db   *sql.DB
	path string
}

// Session is one replay run.
type Session struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	PlanEntries  int
	Succeeded    int
	AlreadyRated int
	NotFound     int
	Failed       int
	Skipped      int
}

// Finished reports whether the run recorded a summary before exiting.
func (s Session) Finished() bool {
	return !s.FinishedAt.IsZero()
}

// Attempt is one effector invocation for one plan entry.
type Attempt struct {
	SessionID string
	TargetID  string
	Rating    int
	Attempt   int
	Outcome   string
	Error     string
	CreatedAt time.Time
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the journal file location.
func (s *Store) Path() string {
	return s.path
}

// BeginSession records the start of a replay run.
func (s *Store) BeginSession(ctx context.Context, sessionID string, planEntries int) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, started_at, plan_entries) VALUES (?, ?, ?)",
		sessionID, time.Now().UTC().Format(time.RFC3339Nano), planEntries)
	if err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

// FinishSession stores the run's outcome counts.
func (s *Store) FinishSession(ctx context.Context, sessionID string, succeeded, alreadyRated, notFound, failed, skipped int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET finished_at = ?, succeeded = ?, already_rated = ?,
            not_found = ?, failed = ?, skipped = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		succeeded, alreadyRated, notFound, failed, skipped, sessionID)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// RecordAttempt appends one effector invocation to the trail.
func (s *Store) RecordAttempt(ctx context.Context, attempt Attempt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (session_id, target_id, rating, attempt, outcome, error, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?)`,
		attempt.SessionID, attempt.TargetID, attempt.Rating, attempt.Attempt,
		attempt.Outcome, nullableString(attempt.Error),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Attempts lists a session's attempts in insertion order.
func (s *Store) Attempts(ctx context.Context, sessionID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, target_id, rating, attempt, outcome, error, created_at
            FROM attempts WHERE session_id = ? ORDER BY id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var attempt Attempt
		var errText sql.NullString
		var createdAt string
		if err := rows.Scan(&attempt.SessionID, &attempt.TargetID, &attempt.Rating,
			&attempt.Attempt, &attempt.Outcome, &errText, &createdAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempt.Error = errText.String
		attempt.CreatedAt = parseTimestamp(createdAt)
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}

// Sessions lists the most recent runs, newest first.
func (s *Store) Sessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, plan_entries, succeeded, already_rated,
            not_found, failed, skipped
            FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var session Session
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&session.ID, &startedAt, &finishedAt, &session.PlanEntries,
			&session.Succeeded, &session.AlreadyRated, &session.NotFound,
			&session.Failed, &session.Skipped); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		session.StartedAt = parseTimestamp(startedAt)
		if finishedAt.Valid {
			session.FinishedAt = parseTimestamp(finishedAt.String)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimestamp(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
