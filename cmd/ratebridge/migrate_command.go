package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"ratebridge/internal/effector"
	"ratebridge/internal/journal"
	"ratebridge/internal/plan"
	"ratebridge/internal/progress"
	"ratebridge/internal/replay"
	"ratebridge/internal/services"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var maxEntries int
	var noResume bool
	var effectorOverride string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Replay the migration plan against the destination",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			built, err := plan.Load(cfg.Paths.PlanFile)
			if err != nil {
				return err
			}
			if built.Pending() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate")
				return nil
			}

			command := cfg.Replay.EffectorCommand
			if strings.TrimSpace(effectorOverride) != "" {
				command = effectorOverride
			}

			var eff effector.Effector
			if dryRun {
				eff = effector.NewDryRun(logger)
			} else {
				if command == "" {
					return services.Wrap(services.ErrConfiguration, "migrate", "effector",
						"replay.effector_command is not set; use --dry-run to rehearse without one", nil)
				}
				eff, err = effector.NewCommand(command,
					time.Duration(cfg.Replay.EffectorTimeout)*time.Second, logger)
				if err != nil {
					return err
				}
			}

			store, err := progress.Open(cfg.Paths.ProgressFile)
			if err != nil {
				return err
			}
			defer store.Close()

			jnl, err := journal.Open(cfg.Paths.JournalFile)
			if err != nil {
				return err
			}
			defer jnl.Close()

			maxPerSession := cfg.Replay.MaxPerSession
			if maxEntries > 0 {
				maxPerSession = maxEntries
			}
			replayer, err := replay.New(eff, store, jnl, logger, replay.Options{
				MaxRetries:    cfg.Replay.MaxRetries,
				BackoffBase:   time.Duration(cfg.Replay.BackoffBase) * time.Second,
				BackoffCap:    time.Duration(cfg.Replay.BackoffCap) * time.Second,
				MaxPerSession: maxPerSession,
				EntryDelay:    entryDelay(cfg.Replay.EntryDelay, dryRun),
				Resume:        cfg.Replay.Resume && !noResume,
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, runErr := replayer.Run(runCtx, built)
			fmt.Fprintln(cmd.OutOrStdout(), renderRunSummary(summary, built.Pending(), dryRun))
			return runErr
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log what would be submitted without submitting")
	cmd.Flags().IntVar(&maxEntries, "max", 0, "Stop after this many applied entries (overrides config)")
	cmd.Flags().BoolVar(&noResume, "no-resume", false, "Ignore previous progress and replay from the top")
	cmd.Flags().StringVar(&effectorOverride, "effector", "", "Submission command (overrides config)")
	return cmd
}

// entryDelay drops the pacing pause for rehearsals; there is no remote site
// to protect.
func entryDelay(seconds int, dryRun bool) time.Duration {
	if dryRun {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func renderRunSummary(summary replay.Summary, pending int, dryRun bool) string {
	rows := [][]string{
		{"Succeeded", fmt.Sprintf("%d", summary.Succeeded)},
		{"Already rated", fmt.Sprintf("%d", summary.AlreadyRated)},
		{"Not found", fmt.Sprintf("%d", summary.NotFound)},
		{"Failed", fmt.Sprintf("%d", summary.Failed)},
		{"Skipped (previous runs)", fmt.Sprintf("%d", summary.Skipped)},
		{"Remaining", fmt.Sprintf("%d", pending-summary.Applied()-summary.Skipped)},
	}
	header := fmt.Sprintf("Session %s", summary.SessionID)
	if dryRun {
		header += " (dry run)"
	}
	return header + "\n" + renderTable(
		[]string{"Outcome", "Entries"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}
