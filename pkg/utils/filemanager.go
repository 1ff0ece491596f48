// =============================================================================
// WinBag2Hiopos - File Manager Utility
// =============================================================================
//
// File management helpers shared by the export and import pipelines:
//   - Directory management
//   - Archival of consumed input files
//
// ARCHIVAL STRATEGY:
//   Consumed input files are moved (not copied) into the archive folder with
//   a timestamp and "_old" inserted before the extension, e.g.
//   "Försäljning.csv" -> "Försäljning_20260102-09-30-00_old.csv". Moving the
//   files doubles as the debounce/idempotence step: once a batch is archived,
//   stray follow-up filesystem events find an incomplete folder and do
//   nothing.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// ArchiveName derives the archived name for a consumed input file:
// base + "_" + timestamp + "_old" + extension.
func ArchiveName(path string, now time.Time) string {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s_old%s", stem, now.Format("20060102-15-04-05"), ext)
}

// ArchiveFiles moves every path into archiveDir under its archived name.
// Called only after a successful run; afterwards the input files must not be
// assumed to exist at their original paths.
func ArchiveFiles(paths []string, archiveDir string, now time.Time, log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if err := EnsureDir(archiveDir); err != nil {
		return err
	}

	for _, path := range paths {
		target := filepath.Join(archiveDir, ArchiveName(path, now))
		if err := os.Rename(path, target); err != nil {
			return fmt.Errorf("failed to archive %s: %w", filepath.Base(path), err)
		}
		log.Infof("archived %s as %s", filepath.Base(path), filepath.Base(target))
	}
	return nil
}

// Exists reports whether a path exists and is a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
