package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ratebridge/internal/ratings"
)

// WriteSourceRatings writes a source export fixture to path.
func WriteSourceRatings(t testing.TB, path string, records []ratings.SourceRating) {
	t.Helper()
	writeJSON(t, path, records)
}

// WriteTargetRatings writes a destination catalog fixture to path.
func WriteTargetRatings(t testing.TB, path string, records []ratings.TargetRating) {
	t.Helper()
	writeJSON(t, path, records)
}

func writeJSON(t testing.TB, path string, value any) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
