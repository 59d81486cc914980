package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jmgilman/go/fsdriver/config"
	"github.com/jmgilman/go/fsdriver/driver"
	"github.com/jmgilman/go/fsdriver/errors"
)

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	storage    string
	jsonOutput bool

	out    io.Writer
	logger *zap.Logger
	driver *driver.Driver
}

// run executes the command line args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return exitSuccess
	}

	a.printError(stderr, err)
	if errors.GetCode(err) == errors.CodeInvalidConfig {
		return exitConfigError
	}
	return exitFailure
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{out: stdout, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "fsdriver",
		Short: "Manage files and folders in configured storages",
		Long: `fsdriver addresses files and folders of a storage by identifier.
Folder identifiers end with a slash, file identifiers never do, and the
root folder is "/".

Storages are local directories, in-memory stores, MinIO or S3 buckets, or
embedded Badger databases, as set up in the configuration file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Configuration file path (default: $XDG_CONFIG_HOME/fsdriver/fsdriver.yaml)")
	flags.StringVarP(&a.storage, "storage", "s", "", "Storage to operate on (default: the configured default storage)")
	flags.BoolVar(&a.jsonOutput, "json", false, "Print results and errors as JSON")

	root.AddCommand(
		newLsCmd(a),
		newMkdirCmd(a),
		newRmdirCmd(a),
		newDefaultFolderCmd(a),
		newImportCmd(a),
		newTouchCmd(a),
		newPutCmd(a),
		newCatCmd(a),
		newRmCmd(a),
		newRenameCmd(a),
		newMvCmd(a),
		newCpCmd(a),
		newHashCmd(a),
		newInfoCmd(a),
	)
	return root, a
}

// open loads the configuration and opens the selected storage.
func (a *app) open() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to build logger")
	}
	a.logger = logger

	sc, err := cfg.Storage(a.storage)
	if err != nil {
		return err
	}
	d, err := driver.NewFromStorageConfig(sc.Config, driver.WithLogger(logger))
	if err != nil {
		return err
	}
	a.driver = d

	logger.Debug("storage opened", zap.String("storage", sc.Name), zap.String("type", sc.Type))
	return nil
}

func (a *app) close() error {
	defer func() { _ = a.logger.Sync() }()
	if a.driver == nil {
		return nil
	}
	return a.driver.Close()
}

// print writes v as JSON in --json mode and through text otherwise.
func (a *app) print(v any, text func(w io.Writer)) error {
	if a.jsonOutput {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(a.out)
	return nil
}

// printID prints a single identifier.
func (a *app) printID(id string) error {
	return a.print(map[string]string{"identifier": id}, func(w io.Writer) {
		fmt.Fprintln(w, id)
	})
}

// printMapping prints an old to new identifier mapping sorted by old
// identifier.
func (a *app) printMapping(m map[string]string) error {
	return a.print(m, func(w io.Writer) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			fmt.Fprintf(w, "%s -> %s\n", k, m[k])
		}
	})
}

func (a *app) printError(w io.Writer, err error) {
	if a.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(errors.ToJSON(err))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// argOr returns args[i], or def when it is absent.
func argOr(args []string, i int, def string) string {
	if len(args) > i {
		return args[i]
	}
	return def
}
