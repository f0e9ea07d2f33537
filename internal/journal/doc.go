// Package journal persists a per-run audit trail of every rating attempt in
// SQLite. The progress file answers "what can be skipped on resume"; the
// journal answers "what happened, when, and why" after the fact.
package journal
