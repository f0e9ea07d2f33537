package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ratebridge/internal/plan"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var showPending bool
	var showNotMatched bool
	var limit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current migration plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			built, err := plan.Load(cfg.Paths.PlanFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan generated %s\n", built.GeneratedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Fprintln(out, renderPlanStats(built))

			if showPending {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderEntryTable("Pending migrations", built.ToMigrate, limit))
			}
			if showNotMatched {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderNotMatchedTable(built.NotMatched, limit))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPending, "pending", false, "List the entries still to migrate")
	cmd.Flags().BoolVar(&showNotMatched, "not-matched", false, "List the entries no match was found for")
	cmd.Flags().IntVar(&limit, "limit", 25, "Maximum rows per listing (0 for all)")
	return cmd
}

func renderEntryTable(title string, entries []plan.Entry, limit int) string {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		if limit > 0 && i >= limit {
			rows = append(rows, []string{fmt.Sprintf("... %d more", len(entries)-limit), "", "", ""})
			break
		}
		rows = append(rows, []string{
			displayTitle(entry),
			entry.Year,
			entry.TargetID,
			fmt.Sprintf("%d", entry.TargetRating),
		})
	}
	header := fmt.Sprintf("%s (%d)", title, len(entries))
	return header + "\n" + renderTable(
		[]string{"Title", "Year", "Target ID", "Rating"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func renderNotMatchedTable(entries []plan.Entry, limit int) string {
	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		if limit > 0 && i >= limit {
			rows = append(rows, []string{fmt.Sprintf("... %d more", len(entries)-limit), "", ""})
			break
		}
		rows = append(rows, []string{
			displayTitle(entry),
			entry.Year,
			fmt.Sprintf("%.0f", entry.SourceRating),
		})
	}
	header := fmt.Sprintf("Not matched (%d)", len(entries))
	return header + "\n" + renderTable(
		[]string{"Title", "Year", "Source Rating"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
}

func displayTitle(entry plan.Entry) string {
	if strings.TrimSpace(entry.EnglishTitle) != "" && entry.EnglishTitle != entry.Title {
		return entry.Title + " / " + entry.EnglishTitle
	}
	return entry.Title
}
