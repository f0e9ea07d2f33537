// Package replay applies a migration plan to the destination site entry by
// entry. Runs are resumable: already-applied identifiers are skipped, each
// success is persisted before moving on, and transient failures retry with
// bounded exponential backoff before the entry is declared failed.
package replay
