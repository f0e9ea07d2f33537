package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateReplay(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold < 0 || c.Matching.Threshold > 1 {
		return errors.New("matching.threshold must be between 0 and 1")
	}
	if c.Matching.YearBonus < 0 || c.Matching.YearBonus > 1 {
		return errors.New("matching.year_bonus must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateReplay() error {
	if c.Replay.EffectorTimeout < 0 {
		return errors.New("replay.effector_timeout must not be negative")
	}
	if c.Replay.MaxRetries < 0 {
		return errors.New("replay.max_retries must not be negative")
	}
	if c.Replay.BackoffBase <= 0 {
		return errors.New("replay.backoff_base must be positive")
	}
	if c.Replay.BackoffCap < c.Replay.BackoffBase {
		return errors.New("replay.backoff_cap must not be below replay.backoff_base")
	}
	if c.Replay.MaxPerSession < 0 {
		return errors.New("replay.max_per_session must not be negative")
	}
	if c.Replay.EntryDelay < 0 {
		return errors.New("replay.entry_delay must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
