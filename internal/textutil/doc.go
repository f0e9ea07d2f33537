// Package textutil provides title normalization and string similarity for
// cross-catalog matching.
//
// Normalize produces a comparison key, never a display title: it lowercases,
// strips a fixed punctuation set, drops English articles, and collapses
// whitespace. Ratio computes a matching-blocks similarity in [0, 1] over the
// normalized keys.
package textutil
