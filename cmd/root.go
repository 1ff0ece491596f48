// =============================================================================
// WinBag2Hiopos - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (export, import, watch, version)
// are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (winbag2hiopos)
//   ├── exportCmd (winbag2hiopos export)
//   ├── importCmd (winbag2hiopos import)
//   ├── watchCmd  (winbag2hiopos watch)
//   └── versionCmd (winbag2hiopos version)
//
// The root command owns the global flags (--config, --verbose) and the
// logging setup shared by every subcommand.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zneed99/WinBag2Hiopos/internal/config"
	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
)

// cfgFile holds the path to the configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose forces debug-level logging regardless of the configured level.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "winbag2hiopos",
	Short: "WinBag2Hiopos - Bridge between Hiopos register exports and WinBag accounting files",

	Long: `WinBag2Hiopos connects the Hiopos point-of-sale registers to the WinBag
accounting system.

In the export direction it waits for the daily batch of register exports
(Försäljning, Betalsätt, Följesedlar, and optionally Moms and Presentkort),
transcodes them into one WinBag interchange file per store, and archives the
consumed exports. In the import direction it splits a WinBag accounting file
(pcs.adm) into the CSV files the registers read back in.

Example Usage:
  winbag2hiopos watch                   # Run the folder watcher
  winbag2hiopos export --dir ./exports  # Transcode one batch by hand
  winbag2hiopos import --file pcs.adm   # Split one accounting file`,

	Run: func(cmd *cobra.Command, args []string) {
		// Without a subcommand there is nothing to do but explain ourselves.
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setup loads the configuration and builds the logger every subcommand uses.
func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	// Route normalizer parse warnings through the same logger.
	normalize.SetLogger(log)

	return cfg, log, nil
}
