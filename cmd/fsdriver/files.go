package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsdriver/identifier"
)

func newTouchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <name> [folder]",
		Short: "Create an empty file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.driver.CreateFile(args[0], argOr(args, 1, identifier.Root))
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
}

func newPutCmd(a *app) *cobra.Command {
	var (
		name string
		move bool
	)

	cmd := &cobra.Command{
		Use:   "put <local-file> [folder]",
		Short: "Upload a local file into a folder",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.driver.AddFile(args[0], argOr(args, 1, identifier.Root), name, move)
			if err != nil {
				return err
			}
			return a.printID(id)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the new file (default: the local file name)")
	cmd.Flags().BoolVar(&move, "move", false, "Remove the local file after uploading")
	return cmd
}

func newCatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <file>",
		Short: "Write the contents of a file to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.driver.DumpFileContents(args[0], a.out)
			return err
		},
	}
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.driver.DeleteFile(args[0])
		},
	}
}

func newHashCmd(a *app) *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:   "hash <file>",
		Short: "Print the hash of a file's name, size, modification time and identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.driver.Hash(args[0], algorithm)
			if err != nil {
				return err
			}
			return a.print(map[string]string{"algorithm": algorithm, "hash": sum}, func(w io.Writer) {
				fmt.Fprintln(w, sum)
			})
		},
	}
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "sha1", "Hash algorithm: sha1 or md5")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	var properties []string

	cmd := &cobra.Command{
		Use:   "info <identifier>",
		Short: "Describe a file or a folder",
		Long: `Describe a file or a folder. Identifiers ending with a slash are
folders. For files, --property limits the output to the named properties.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if identifier.IsFolder(id) {
				info, err := a.driver.GetFolderInfoByIdentifier(id)
				if err != nil {
					return err
				}
				return a.print(info, func(w io.Writer) {
					fmt.Fprintf(w, "identifier=%s\nname=%s\nstorage=%s\n", info.Identifier, info.Name, info.StorageID)
				})
			}

			info, err := a.driver.GetFileInfoByIdentifier(id, properties...)
			if err != nil {
				return err
			}
			m := info.Map()
			return a.print(m, func(w io.Writer) {
				for _, k := range slices.Sorted(maps.Keys(m)) {
					fmt.Fprintf(w, "%s=%v\n", k, m[k])
				}
			})
		},
	}
	cmd.Flags().StringSliceVarP(&properties, "property", "p", nil, "Property to print (repeatable; default: all)")
	return cmd
}
