package textutil

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "The Matrix", "matrix"},
		{"strips punctuation", "The Matrix!", "matrix"},
		{"drops articles", "A Beautiful Mind", "beautiful mind"},
		{"collapses whitespace", "  Spirited   Away  ", "spirited away"},
		{"keeps cjk", "千与千寻", "千与千寻"},
		{"mixed", "WALL-E: (2008)", "walle 2008"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"The Matrix!", "a 'Quiet' Place", "第三季", "Der Himmel über Berlin"}
	for _, input := range inputs {
		once := Normalize(input)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNormalizeCaseAndPunctuationInsensitive(t *testing.T) {
	if Normalize("The Matrix!") != Normalize("the matrix") {
		t.Fatal("expected identical keys for punctuation/case variants")
	}
}
