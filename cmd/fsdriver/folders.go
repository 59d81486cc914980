package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsdriver/driver"
	"github.com/jmgilman/go/fsdriver/identifier"
)

func newLsCmd(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "ls [folder]",
		Short: "List the folders and files inside a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := argOr(args, 0, identifier.Root)
			opts := driver.ListOptions{Recursive: recursive}

			folders, err := a.driver.GetFoldersInFolder(folder, opts)
			if err != nil {
				return err
			}
			files, err := a.driver.GetFilesInFolder(folder, opts)
			if err != nil {
				return err
			}

			ids := slices.Sorted(maps.Keys(folders))
			ids = append(ids, slices.Sorted(maps.Keys(files))...)
			return a.print(ids, func(w io.Writer) {
				for _, id := range ids {
					fmt.Fprintln(w, id)
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "List everything below the folder")
	return cmd
}

func newMkdirCmd(a *app) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir <name> [parent]",
		Short: "Create a folder",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.driver.CreateFolder(args[0], argOr(args, 1, identifier.Root), parents)
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Create missing parent folders")
	return cmd
}

func newRmdirCmd(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "rmdir <folder>",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.driver.DeleteFolder(args[0], recursive)
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Delete the folder together with its contents")
	return cmd
}

func newDefaultFolderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "default-folder",
		Short: "Print the default upload folder, creating it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.driver.GetDefaultFolder()
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <local-dir> [folder]",
		Short: "Copy a local directory tree into a folder",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", args[0])
			}

			folder := identifier.CanonicalizeFolder(argOr(args, 1, identifier.Root))
			if err := a.driver.ImportFolder(os.DirFS(args[0]), ".", folder); err != nil {
				return err
			}
			return a.printID(folder)
		},
	}
	return cmd
}
