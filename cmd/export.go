// =============================================================================
// WinBag2Hiopos - Export Command
// =============================================================================
//
// This file defines the 'export' command, the one-shot form of the main
// pipeline. It loads one complete batch of register exports from the input
// folder, transcodes them into the WinBag interchange files, and archives the
// consumed inputs.
//
// COMMAND USAGE:
//   winbag2hiopos export [flags]
//
// FLAGS:
//   --dir          : Override the configured input folder
//   --out          : Override the configured output folder
//   --keep-inputs  : Leave the consumed exports in place instead of archiving
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Load all required export tables into memory (fatal if one is missing)
//   3. Build the store <-> series map from the sales table
//   4. Create one empty interchange file per store
//   5. Run the record builders in fixed order (00 ... 99)
//   6. Archive the consumed input files
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Zneed99/WinBag2Hiopos/internal/config"
	"github.com/Zneed99/WinBag2Hiopos/internal/export"
	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
	"github.com/Zneed99/WinBag2Hiopos/pkg/utils"
)

// inputDirOverride replaces the configured input folder for this invocation.
var inputDirOverride string

// outputDirOverride replaces the configured output folder for this invocation.
var outputDirOverride string

// keepInputs disables archival of the consumed export files.
var keepInputs bool

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Transcode one batch of Hiopos exports into WinBag interchange files",
	Long: `The export command reads one complete batch of register exports from the
input folder and produces one WinBag interchange file per store.

The sales, payment-method and delivery-note exports are mandatory; without
them the run aborts before any output file is created. The VAT and gift-card
exports are optional and simply add their record types when present.

On success the consumed exports are moved to the archive folder with a
timestamp and "_old" suffix, so a re-triggered run finds an empty input
folder and does nothing.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if inputDirOverride != "" {
			cfg.InputDir = inputDirOverride
		}
		if outputDirOverride != "" {
			cfg.OutputDir = outputDirOverride
		}
		return runExport(cfg, log, !keepInputs)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&inputDirOverride, "dir", "", "Input folder holding the register exports")
	exportCmd.Flags().StringVar(&outputDirOverride, "out", "", "Output folder for the interchange files")
	exportCmd.Flags().BoolVar(&keepInputs, "keep-inputs", false, "Do not archive the consumed export files")
}

// runExport performs one full export run. Shared between the export command
// and the watcher.
func runExport(cfg *config.Config, log *logrus.Logger, archive bool) error {
	start := time.Now()

	in, err := pos.Load(cfg.InputDir, cfg.PosKeywords())
	if err != nil {
		return fmt.Errorf("failed to load input batch: %w", err)
	}

	run := export.New(in, log)
	now := time.Now().In(cfg.Location())
	if err := run.Execute(cfg.OutputDir, now); err != nil {
		return fmt.Errorf("export run %s failed: %w", run.ID, err)
	}

	for _, f := range run.Files() {
		fmt.Printf("  ✓ %s\n", filepath.Base(f.Path))
	}

	if archive {
		if err := utils.ArchiveFiles(in.ConsumedFiles, cfg.ArchiveDir, now, log); err != nil {
			// The interchange files are already complete; a failed move is
			// worth a warning, not a failed run.
			log.Warnf("failed to archive input files: %v", err)
		}
	}

	fmt.Printf("Exported %d file(s) to %s in %s\n",
		len(run.Files()), cfg.OutputDir, time.Since(start).Round(time.Millisecond))
	return nil
}
