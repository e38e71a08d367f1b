package main

import (
	"tiedye/internal/pathstore"

	"github.com/spf13/cobra"
)

// NewPathCmd creates the path shortcut command group.
func NewPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Manage named directory shortcuts",
	}

	cmd.AddCommand(newPathSaveCmd())
	cmd.AddCommand(newPathRemoveCmd())
	cmd.AddCommand(newPathListCmd())
	cmd.AddCommand(newPathGetCmd())

	return cmd
}

func newPathStore() (*pathstore.Store, error) {
	store, err := configStore()
	if err != nil {
		return nil, err
	}
	return pathstore.New(store), nil
}

func newPathSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <directory>",
		Short: "Save a directory under a shortcut name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newPathStore()
			if err != nil {
				return err
			}
			resolved, err := store.Save(args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("%s %s -> %s\n", successText("saved"), args[0], resolved)
			return nil
		},
	}
}

func newPathRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a shortcut",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newPathStore()
			if err != nil {
				return err
			}
			if err := store.Remove(args[0]); err != nil {
				return err
			}
			cmd.Printf("%s removed %q\n", successText("ok"), args[0])
			return nil
		},
	}
}

func newPathListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newPathStore()
			if err != nil {
				return err
			}
			shortcuts, err := store.List()
			if err != nil {
				return err
			}
			if len(shortcuts) == 0 {
				cmd.Println(dimText("No shortcuts saved yet."))
				return nil
			}
			for _, shortcut := range shortcuts {
				cmd.Printf("%s\t%s\n", headerText(shortcut.Name), shortcut.Path)
			}
			return nil
		},
	}
}

// get prints only the raw path so shells can use it directly, e.g.
// cd "$(tiedye path get work)".
func newPathGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the directory a shortcut points at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newPathStore()
			if err != nil {
				return err
			}
			path, err := store.Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(path)
			return nil
		},
	}
}
