package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"tiedye/internal/sort"
	"tiedye/internal/watch"
	"tiedye/pkg/types"

	"github.com/spf13/cobra"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [source]",
		Short: "Watch a directory and sort new files as they appear",
		Args:  cobra.MaximumNArgs(1),
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

			watcher, err := watch.New(source, engine, func(outcome types.MoveOutcome) {
				name := filepath.Base(outcome.Source)
				switch outcome.Status {
				case types.StatusMoved:
					cmd.Printf("%s %s -> %s\n", successText("moved"), name, outcome.Destination)
				case types.StatusFailed:
					cmd.Printf("%s %s: %v\n", errorText("failed"), name, outcome.Err)
				}
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmd.Println(infoText("Watching for new files. Press Ctrl+C to stop."))
			if err := watcher.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			cmd.Println(infoText("Watch stopped."))
			return nil
		},
	}
	return cmd
}
