package progress

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenFreshFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer store.Close()

	if store.Count() != 0 {
		t.Fatalf("fresh store count = %d, want 0", store.Count())
	}
	if store.IsProcessed("tt1") {
		t.Fatal("fresh store must not report anything processed")
	}
}

func TestMarkProcessedPersistsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := store.MarkProcessed("tt1"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := store.MarkProcessed("tt2"); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := store.MarkProcessed("tt1"); err != nil {
		t.Fatalf("duplicate mark failed: %v", err)
	}
	if store.Count() != 2 {
		t.Fatalf("count = %d, want 2 (duplicates collapse)", store.Count())
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read progress file: %v", err)
	}
	if !strings.Contains(string(data), "processed_target_ids") {
		t.Fatalf("unexpected file content: %s", data)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	if !reopened.IsProcessed("tt1") || !reopened.IsProcessed("tt2") {
		t.Fatal("reopened store must resume previous progress")
	}
	if reopened.IsProcessed("tt3") {
		t.Fatal("unseen id reported processed")
	}
}

func TestOpenRejectsSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer first.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("second open must fail while the lock is held")
	}
}

func TestOpenRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatal("malformed progress file must fail the open")
	}
}
