package config

const (
	defaultDataDir          = "~/.local/share/ratebridge/data"
	defaultLogDir           = "~/.local/share/ratebridge/logs"
	defaultSourceFileName   = "source_ratings.json"
	defaultTargetFileName   = "target_ratings.json"
	defaultPlanFileName     = "migration_plan.json"
	defaultProgressFileName = "migration_progress.json"
	defaultJournalFileName  = "replay_journal.db"
	defaultMatchThreshold   = 0.8
	defaultYearBonus        = 0.2
	defaultEffectorTimeout  = 120
	defaultMaxRetries       = 3
	defaultBackoffBase      = 1
	defaultBackoffCap       = 60
	defaultEntryDelay       = 3
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Matching: Matching{
			Threshold: defaultMatchThreshold,
			YearBonus: defaultYearBonus,
		},
		Series: Series{
			GroupingEnabled: true,
		},
		Replay: Replay{
			EffectorTimeout: defaultEffectorTimeout,
			MaxRetries:      defaultMaxRetries,
			BackoffBase:     defaultBackoffBase,
			BackoffCap:      defaultBackoffCap,
			EntryDelay:      defaultEntryDelay,
			Resume:          true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
