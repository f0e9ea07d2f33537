package textutil

import "testing"

func TestRatioIdentical(t *testing.T) {
	if got := Ratio("matrix", "matrix"); got != 1 {
		t.Fatalf("identical strings should score 1, got %f", got)
	}
}

func TestRatioDisjoint(t *testing.T) {
	if got := Ratio("abc", "xyz"); got != 0 {
		t.Fatalf("disjoint strings should score 0, got %f", got)
	}
}

func TestRatioEmpty(t *testing.T) {
	if got := Ratio("", ""); got != 1 {
		t.Fatalf("two empty strings should score 1, got %f", got)
	}
	if got := Ratio("abc", ""); got != 0 {
		t.Fatalf("empty against non-empty should score 0, got %f", got)
	}
}

func TestRatioSymmetricRange(t *testing.T) {
	pairs := [][2]string{
		{"seven samurai", "the seven samurai"},
		{"spirited away", "spirited"},
		{"blade runner", "blade runner 2049"},
	}
	for _, pair := range pairs {
		ab := Ratio(pair[0], pair[1])
		ba := Ratio(pair[1], pair[0])
		if ab != ba {
			t.Fatalf("Ratio not symmetric for %v: %f vs %f", pair, ab, ba)
		}
		if ab <= 0 || ab >= 1 {
			t.Fatalf("expected partial score in (0,1) for %v, got %f", pair, ab)
		}
	}
}

func TestRatioCountsAllMatchingBlocks(t *testing.T) {
	// "abxcd" vs "abcd": blocks "ab" and "cd" both count, 2*4/9.
	got := Ratio("abxcd", "abcd")
	want := 2.0 * 4.0 / 9.0
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestRatioCloseTitlesBeatThreshold(t *testing.T) {
	score := Ratio(Normalize("Léon: The Professional"), Normalize("Leon The Professional"))
	if score < 0.8 {
		t.Fatalf("near-identical titles should clear 0.8, got %f", score)
	}
}
