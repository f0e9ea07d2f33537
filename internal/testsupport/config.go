// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"ratebridge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// File paths are resolved under the temp data directory the way a normal
// load would resolve them.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SourceFile = filepath.Join(cfg.Paths.DataDir, "source_ratings.json")
	cfg.Paths.TargetFile = filepath.Join(cfg.Paths.DataDir, "target_ratings.json")
	cfg.Paths.PlanFile = filepath.Join(cfg.Paths.DataDir, "migration_plan.json")
	cfg.Paths.ProgressFile = filepath.Join(cfg.Paths.DataDir, "migration_progress.json")
	cfg.Paths.JournalFile = filepath.Join(cfg.Paths.DataDir, "replay_journal.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithEffectorCommand sets the replay effector command on the test config.
func WithEffectorCommand(command string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Replay.EffectorCommand = command
	}
}

// WriteConfigFile marshals the config to a TOML file and returns its path,
// for tests that drive the CLI the way a user would.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
