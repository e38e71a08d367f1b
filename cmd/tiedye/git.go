package main

import (
	"os"

	"tiedye/internal/analytics"
	"tiedye/internal/gitflow"

	"github.com/spf13/cobra"
)

// NewGitCmd creates the git workflow shortcut command group.
func NewGitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git",
		Short: "Git workflow shortcuts",
	}

	cmd.AddCommand(newGitStartFeatureCmd())

	return cmd
}

func newGitStartFeatureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-feature <branch>",
		Short: "Create a feature branch from an up-to-date main",
		Long: `Runs, in order: git checkout main, git pull origin main,
git checkout -b <branch>, git push -u origin <branch>.
The sequence stops at the first failing step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			dir, err := os.Getwd()
			if err != nil {
				return err
			}

			runner := gitflow.NewRunner(dir)
			runner.SetOutput(cmd.OutOrStdout())
			if err := runner.Run(cmd.Context(), gitflow.StartFeature(args[0])); err != nil {
				return err
			}

			cmd.Printf("%s feature branch %q ready\n", successText("ok"), args[0])
			analytics.Record(cfg.Analytics, "workflow_completed", map[string]interface{}{
				"workflow": "start-feature",
				"branch":   args[0],
			})
			return nil
		},
	}
}
