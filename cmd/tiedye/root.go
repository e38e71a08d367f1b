package main

import (
	"tiedye/internal/config"
	"tiedye/internal/log"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tiedye",
		Short: "A personal productivity toolbelt",
		Long: `Tiedye bundles the small automations of a daily workflow:
sorting downloads into folders by rules, scaffolding new projects from
saved templates, jumping to named directories, and git shortcuts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tiedye/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewSortCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewScaffoldCmd())
	rootCmd.AddCommand(NewPathCmd())
	rootCmd.AddCommand(NewGitCmd())

	return rootCmd
}

// configPath resolves the configuration file location, honoring --config.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultPath()
}

// loadConfig loads the configuration document for a command invocation.
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return config.LoadFile(path)
}

// configStore returns the load-modify-save store used by commands that
// persist changes back to the config file.
func configStore() (*config.Store, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path), nil
}
