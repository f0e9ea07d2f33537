package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and data file configuration. The file paths
// default to well-known names under DataDir when left empty.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	SourceFile   string `toml:"source_file"`
	TargetFile   string `toml:"target_file"`
	PlanFile     string `toml:"plan_file"`
	ProgressFile string `toml:"progress_file"`
	JournalFile  string `toml:"journal_file"`
}

// Matching contains tunables for the fuzzy title matcher.
type Matching struct {
	// Threshold is the minimum similarity score for a fuzzy match. Exact
	// target-id matches bypass it.
	Threshold float64 `toml:"threshold"`
	// YearBonus is added to the title similarity when both years are
	// present and equal.
	YearBonus float64 `toml:"year_bonus"`
}

// Series contains tunables for TV-season grouping.
type Series struct {
	// GroupingEnabled combines per-season source records that share a base
	// title into one aggregated record before matching.
	GroupingEnabled bool `toml:"grouping_enabled"`
}

// Replay contains configuration for plan replay through the effector.
type Replay struct {
	// EffectorCommand is the external program invoked per rating. It
	// receives the target id and the converted rating as arguments.
	EffectorCommand string `toml:"effector_command"`
	// EffectorTimeout bounds a single effector invocation, in seconds.
	EffectorTimeout int `toml:"effector_timeout"`
	// MaxRetries bounds re-attempts after a transient effector failure.
	MaxRetries int `toml:"max_retries"`
	// BackoffBase and BackoffCap shape the exponential retry delay, in
	// seconds.
	BackoffBase int `toml:"backoff_base"`
	BackoffCap  int `toml:"backoff_cap"`
	// MaxPerSession caps how many plan entries one run processes. Zero
	// means no cap.
	MaxPerSession int `toml:"max_per_session"`
	// EntryDelay is the pacing pause between entries, in seconds.
	EntryDelay int `toml:"entry_delay"`
	// Resume consults the progress file to skip already-processed ids.
	// Disabling it replays the full plan from the top.
	Resume bool `toml:"resume"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for ratebridge.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Matching Matching `toml:"matching"`
	Series   Series   `toml:"series"`
	Replay   Replay   `toml:"replay"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/ratebridge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("ratebridge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
