package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ratebridge/internal/fileutil"
	"ratebridge/internal/journal"
	"ratebridge/internal/plan"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var sessionLimit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show plan progress and recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			built, planErr := plan.Load(cfg.Paths.PlanFile)
			if planErr != nil {
				if errors.Is(planErr, os.ErrNotExist) {
					fmt.Fprintln(out, renderStatusLine("Plan", statusWarn,
						"not built yet; run `ratebridge plan`", colorize))
					return nil
				}
				return planErr
			}

			processed := processedCount(cfg.Paths.ProgressFile)
			remaining := built.Pending() - processed
			if remaining < 0 {
				remaining = 0
			}

			fmt.Fprintln(out, renderStatusLine("Plan", statusOK,
				fmt.Sprintf("built %s", built.GeneratedAt.Local().Format("2006-01-02 15:04:05")), colorize))
			fmt.Fprintln(out, renderStatusLine("Pending entries", statusInfo,
				fmt.Sprintf("%d", built.Pending()), colorize))
			kind := statusInfo
			if remaining == 0 {
				kind = statusOK
			}
			fmt.Fprintln(out, renderStatusLine("Applied", kind,
				fmt.Sprintf("%d of %d", processed, built.Pending()), colorize))
			fmt.Fprintln(out, renderStatusLine("Not matched", notMatchedKind(built),
				fmt.Sprintf("%d", built.Stats.NotMatched), colorize))

			sessions, err := recentSessions(cfg.Paths.JournalFile, sessionLimit)
			if err != nil {
				return err
			}
			if len(sessions) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderSessionTable(sessions))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&sessionLimit, "sessions", 5, "How many recent runs to list")
	return cmd
}

func notMatchedKind(built *plan.Plan) statusKind {
	if built.Stats.NotMatched > 0 {
		return statusWarn
	}
	return statusOK
}

// processedCount reads the progress file directly instead of opening the
// store; status must not steal the lock from a running migration.
func processedCount(path string) int {
	var state struct {
		ProcessedTargetIDs []string `json:"processed_target_ids"`
	}
	if err := fileutil.ReadJSON(path, &state); err != nil {
		return 0
	}
	return len(state.ProcessedTargetIDs)
}

func recentSessions(journalPath string, limit int) ([]journal.Session, error) {
	if _, err := os.Stat(journalPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	store, err := journal.Open(journalPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Sessions(context.Background(), limit)
}

func renderSessionTable(sessions []journal.Session) string {
	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		state := "running"
		if session.Finished() {
			state = "finished"
		}
		rows = append(rows, []string{
			session.StartedAt.Local().Format("2006-01-02 15:04"),
			shortSessionID(session.ID),
			state,
			fmt.Sprintf("%d", session.Succeeded),
			fmt.Sprintf("%d", session.Failed),
			fmt.Sprintf("%d", session.Skipped),
		})
	}
	return "Recent runs\n" + renderTable(
		[]string{"Started", "Session", "State", "Succeeded", "Failed", "Skipped"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}

func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
