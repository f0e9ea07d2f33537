// Package match resolves source records against the target catalog. An
// exact target identifier always wins; otherwise candidates are scored by
// normalized title similarity with a flat bonus for a matching release year.
package match
