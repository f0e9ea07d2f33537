package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ratebridge/internal/config"
	"ratebridge/internal/match"
	"ratebridge/internal/plan"
	"ratebridge/internal/ratings"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var sourcePath string
	var targetPath string
	var outputPath string
	var noGrouping bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a migration plan from the scraped exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			sourceFile, err := resolveOverride(sourcePath, cfg.Paths.SourceFile)
			if err != nil {
				return err
			}
			targetFile, err := resolveOverride(targetPath, cfg.Paths.TargetFile)
			if err != nil {
				return err
			}
			planFile, err := resolveOverride(outputPath, cfg.Paths.PlanFile)
			if err != nil {
				return err
			}

			source, err := ratings.LoadSource(sourceFile)
			if err != nil {
				return err
			}
			target, err := ratings.LoadTarget(targetFile)
			if err != nil {
				return err
			}

			built, err := plan.NewBuilder(logger).Build(source, target, plan.Options{
				Policy: match.Policy{
					Threshold: cfg.Matching.Threshold,
					YearBonus: cfg.Matching.YearBonus,
				},
				GroupSeries: cfg.Series.GroupingEnabled && !noGrouping,
			})
			if err != nil {
				return err
			}
			if err := plan.Write(planFile, built); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderPlanStats(built))
			fmt.Fprintf(out, "Plan written to %s\n", planFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourcePath, "source", "", "Source ratings export (overrides config)")
	cmd.Flags().StringVar(&targetPath, "target", "", "Destination ratings export (overrides config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Plan destination (overrides config)")
	cmd.Flags().BoolVar(&noGrouping, "no-grouping", false, "Skip TV season grouping")
	return cmd
}

func resolveOverride(flagValue, configured string) (string, error) {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		return configured, nil
	}
	return config.ExpandPath(value)
}

func renderPlanStats(built *plan.Plan) string {
	stats := built.Stats
	rows := [][]string{
		{"Source records", fmt.Sprintf("%d", stats.TotalSource), ""},
		{"Destination records", fmt.Sprintf("%d", stats.TotalTarget), ""},
		{"Seasons combined", fmt.Sprintf("%d", stats.TVSeriesCombined), ""},
		{"Already rated (by id)", fmt.Sprintf("%d", stats.MatchedWithExistingTarget), percentOf(stats.MatchedWithExistingTarget, resolvedTotal(stats))},
		{"Already rated (by title)", fmt.Sprintf("%d", stats.MatchedByTitle), percentOf(stats.MatchedByTitle, resolvedTotal(stats))},
		{"To migrate", fmt.Sprintf("%d", stats.HasIDToMigrate), percentOf(stats.HasIDToMigrate, resolvedTotal(stats))},
		{"Not matched", fmt.Sprintf("%d", stats.NotMatched), percentOf(stats.NotMatched, resolvedTotal(stats))},
	}
	return renderTable(
		[]string{"Metric", "Count", "Share"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}

func resolvedTotal(stats plan.Stats) int {
	return stats.MatchedWithExistingTarget + stats.MatchedByTitle + stats.HasIDToMigrate + stats.NotMatched
}

func percentOf(part, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
