// Command fsdriver manages the files and folders of configured storages.
//
// Storages are read from a YAML configuration file (see package config).
// Every subcommand works on one storage, selected with --storage or the
// configured default:
//
//	fsdriver --config fsdriver.yaml mkdir docs
//	fsdriver put ./report.pdf /docs/
//	fsdriver --json info /docs/report.pdf
package main

import (
	"os"
)

// Set via ldflags.
var version = "dev"

// Exit codes.
const (
	exitSuccess     = 0
	exitFailure     = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
