package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// strippedPunctuation is removed wholesale before tokenizing. Kept in sync
// across both catalogs so the same title scraped from either side produces
// the same key.
const strippedPunctuation = `,.:;-!?()[]{}"'`

// stopwords are English articles that differ between catalog listings.
var stopwords = map[string]struct{}{
	"the": {},
	"a":   {},
	"an":  {},
}

// Normalize canonicalizes a title into a comparison key. Idempotent and
// total: any input, including empty, yields a deterministic key.
func Normalize(title string) string {
	// Scraped CJK titles arrive in mixed Unicode normalization forms.
	title = norm.NFC.String(title)
	title = strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		if strings.ContainsRune(strippedPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}

	words := strings.Fields(b.String())
	kept := words[:0]
	for _, word := range words {
		if _, skip := stopwords[word]; skip {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
