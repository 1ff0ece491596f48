// =============================================================================
// WinBag2Hiopos - Import Command
// =============================================================================
//
// This file defines the 'import' command, the one-shot form of the reverse
// pipeline: split one WinBag accounting file into the four CSV files the
// registers read back in.
//
// COMMAND USAGE:
//   winbag2hiopos import [flags]
//
// FLAGS:
//   --file         : Path to the accounting file (default: the configured
//                    trigger file inside the input folder)
//   --keep-inputs  : Leave the accounting file in place instead of archiving
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
	"github.com/Zneed99/WinBag2Hiopos/internal/importer"
	"github.com/Zneed99/WinBag2Hiopos/pkg/utils"
)

// importFile is the accounting file to split.
var importFile string

// keepImportInput disables archival of the consumed accounting file.
var keepImportInput bool

// importCmd represents the 'import' command.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Split a WinBag accounting file into register CSV files",
	Long: `The import command reads one fixed-format WinBag accounting file and fans
its lines out into four semicolon-joined files by record type: customers
(01/11), articles (02/22), main groups and sub groups (03/33). Header and
footer records are ignored.

The derived files are written to the import output folder with a timestamp
in their names, so repeated imports never overwrite each other.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		path := importFile
		if path == "" {
			path = filepath.Join(cfg.InputDir, cfg.ImportTrigger)
		}
		return runImport(cfg, log, path, !keepImportInput)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFile, "file", "", "Path to the accounting file to split")
	importCmd.Flags().BoolVar(&keepImportInput, "keep-inputs", false, "Do not archive the consumed accounting file")
}

// runImport performs one import split. Shared between the import command and
// the watcher.
func runImport(cfg *config.Config, log *logrus.Logger, path string, archive bool) error {
	now := time.Now().In(cfg.Location())

	res, err := importer.Split(path, cfg.ImportOutputDir, now, log)
	if err != nil {
		return fmt.Errorf("import of %s failed: %w", filepath.Base(path), err)
	}

	for _, out := range []string{res.Customers, res.Articles, res.MainGroups, res.SubGroups} {
		fmt.Printf("  ✓ %s\n", filepath.Base(out))
	}
	fmt.Printf("Split %d line(s) from %s\n", res.LinesRead, filepath.Base(path))

	if archive {
		if err := utils.ArchiveFiles([]string{path}, cfg.ArchiveDir, now, log); err != nil {
			log.Warnf("failed to archive accounting file: %v", err)
		}
	}
	return nil
}
