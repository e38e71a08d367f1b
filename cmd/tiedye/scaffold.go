package main

import (
	"tiedye/internal/analytics"
	"tiedye/internal/config"
	"tiedye/internal/scaffold"

	"github.com/spf13/cobra"
)

// NewScaffoldCmd creates the scaffold command group.
func NewScaffoldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Save directory trees as templates and create projects from them",
	}

	cmd.AddCommand(newScaffoldSaveCmd())
	cmd.AddCommand(newScaffoldNewCmd())
	cmd.AddCommand(newScaffoldListCmd())
	cmd.AddCommand(newScaffoldFavCmd())
	cmd.AddCommand(newScaffoldUnfavCmd())

	return cmd
}

func newScaffolder() (*scaffold.Scaffolder, *config.Config, error) {
	store, err := configStore()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return scaffold.New(cfg.Scaffolder, store), cfg, nil
}

func newScaffoldSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <source-dir>",
		Short: "Save a directory tree as a reusable template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, cfg, err := newScaffolder()
			if err != nil {
				return err
			}

			dest, err := scaffolder.SaveTemplate(args[0], args[1])
			if err != nil {
				return err
			}

			cmd.Printf("%s template %q saved to %s\n", successText("ok"), args[0], dest)
			analytics.Record(cfg.Analytics, "template_saved", map[string]interface{}{
				"template_name": args[0],
			})
			return nil
		},
	}
}

func newScaffoldNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <template> <project-name>",
		Short: "Create a new project directory from a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, cfg, err := newScaffolder()
			if err != nil {
				return err
			}

			dest, err := scaffolder.CreateProject(args[0], args[1])
			if err != nil {
				return err
			}

			cmd.Printf("%s project %q created at %s\n", successText("ok"), args[1], dest)
			analytics.Record(cfg.Analytics, "project_created", map[string]interface{}{
				"template_name": args[0],
				"project_name":  args[1],
			})
			return nil
		},
	}
}

func newScaffoldListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, _, err := newScaffolder()
			if err != nil {
				return err
			}

			favorites, others, err := scaffolder.ListTemplates()
			if err != nil {
				return err
			}
			if len(favorites) == 0 && len(others) == 0 {
				cmd.Println(dimText("No templates saved yet."))
				return nil
			}

			if len(favorites) > 0 {
				cmd.Println(headerText("Favorites"))
				for _, name := range favorites {
					cmd.Printf("  %s %s\n", warningText("*"), name)
				}
			}
			if len(others) > 0 {
				cmd.Println(headerText("Templates"))
				for _, name := range others {
					cmd.Printf("    %s\n", name)
				}
			}
			return nil
		},
	}
}

func newScaffoldFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <template>",
		Short: "Mark a template as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, _, err := newScaffolder()
			if err != nil {
				return err
			}
			if err := scaffolder.Favorite(args[0]); err != nil {
				return err
			}
			cmd.Printf("%s %q is now a favorite\n", successText("ok"), args[0])
			return nil
		},
	}
}

func newScaffoldUnfavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfav <template>",
		Short: "Remove a template from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, _, err := newScaffolder()
			if err != nil {
				return err
			}
			if err := scaffolder.Unfavorite(args[0]); err != nil {
				return err
			}
			cmd.Printf("%s %q removed from favorites\n", successText("ok"), args[0])
			return nil
		},
	}
}
