// Package progress tracks which plan entries a replay run has already
// applied. The file is rewritten atomically after every success so a crash
// loses at most the in-flight entry, and a file lock keeps two concurrent
// runs from interleaving writes.
package progress
