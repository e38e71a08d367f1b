package main

import (
	"path/filepath"

	"tiedye/internal/analytics"
	"tiedye/internal/sort"
	"tiedye/pkg/types"

	"github.com/spf13/cobra"
)

// NewSortCmd creates the sort command.
func NewSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort [source]",
		Short: "Sort files into folders using the configured rules",
		Long: `Sort scans the source directory (default: current directory) and moves
each file whose extension matches a configured rule into that rule's
target folder. Files without a matching rule are left in place.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "."
			if len(args) == 1 {
				source = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sorterCfg, err := cfg.SorterConfig()
			if err != nil {
				return err
			}

			engine, err := sort.NewEngine(sorterCfg)
			if err != nil {
				return err
			}
			report, err := engine.Run(source)
			if err != nil {
				return err
			}

			printReport(cmd, report)

			analytics.Record(cfg.Analytics, "sort_completed", map[string]interface{}{
				"source":  source,
				"scanned": report.Total(),
				"moved":   report.Count(types.StatusMoved),
				"skipped": report.Skipped(),
				"no_rule": report.Count(types.StatusSkippedNoRule),
				"failed":  report.Count(types.StatusFailed),
			})
			return nil
		},
	}
	return cmd
}

func printReport(cmd *cobra.Command, report *sort.Report) {
	for _, outcome := range report.Outcomes() {
		name := filepath.Base(outcome.Source)
		switch outcome.Status {
		case types.StatusMoved:
			cmd.Printf("%s %s -> %s\n", successText("moved"), name, outcome.Destination)
		case types.StatusSkippedCollision:
			cmd.Printf("%s %s (destination exists)\n", warningText("skipped"), name)
		case types.StatusSkippedSameLocation:
			cmd.Printf("%s %s (already in place)\n", dimText("skipped"), name)
		case types.StatusSkippedNoRule:
			cmd.Printf("%s %s (no matching rule)\n", dimText("skipped"), name)
		case types.StatusFailed:
			cmd.Printf("%s %s: %v\n", errorText("failed"), name, outcome.Err)
		}
	}
	cmd.Println(headerText(report.Summary()))
}
