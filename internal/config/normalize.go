package config

import (
	"path/filepath"
	"strings"
)

// normalize expands directory paths and resolves the data file locations
// against DataDir when they were not set explicitly.
func (c *Config) normalize() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return err
	}

	files := []struct {
		field       *string
		defaultName string
	}{
		{&c.Paths.SourceFile, defaultSourceFileName},
		{&c.Paths.TargetFile, defaultTargetFileName},
		{&c.Paths.PlanFile, defaultPlanFileName},
		{&c.Paths.ProgressFile, defaultProgressFileName},
		{&c.Paths.JournalFile, defaultJournalFileName},
	}
	for _, file := range files {
		value := strings.TrimSpace(*file.field)
		if value == "" {
			*file.field = filepath.Join(c.Paths.DataDir, file.defaultName)
			continue
		}
		if *file.field, err = expandPath(value); err != nil {
			return err
		}
	}

	c.Replay.EffectorCommand = strings.TrimSpace(c.Replay.EffectorCommand)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}
