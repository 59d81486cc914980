package main

import (
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsdriver/identifier"
)

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <identifier> <new-name>",
		Short: "Rename a file or folder in place",
		Long: `Rename a file or folder inside its parent folder. Identifiers ending
with a slash are folders; renaming a folder prints the new identifier of
everything below it. A folder that cannot be renamed maps to itself.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if identifier.IsFolder(args[0]) {
				return a.printMapping(a.driver.RenameFolder(args[0], args[1]))
			}
			id, err := a.driver.RenameFile(args[0], args[1])
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
}

func newMvCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "mv <identifier> <target-folder>",
		Short: "Move a file or folder into another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if identifier.IsFolder(args[0]) {
				mapping, err := a.driver.MoveFolderWithinStorage(args[0], args[1], name)
				if err != nil {
					return err
				}
				return a.printMapping(mapping)
			}
			id, err := a.driver.MoveFileWithinStorage(args[0], args[1], name)
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "New name in the target folder (default: keep the name)")
	return cmd
}

func newCpCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "cp <identifier> <target-folder>",
		Short: "Copy a file or folder into another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if identifier.IsFolder(args[0]) {
				target := name
				if target == "" {
					target = identifier.Base(args[0])
				}
				if err := a.driver.CopyFolderWithinStorage(args[0], args[1], name); err != nil {
					return err
				}
				return a.printID(identifier.JoinFolder(args[1], target))
			}
			id, err := a.driver.CopyFileWithinStorage(args[0], args[1], name)
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the copy (default: the source name)")
	return cmd
}
