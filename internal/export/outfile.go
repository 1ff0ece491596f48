// =============================================================================
// WinBag2Hiopos - Output File Assembler
// =============================================================================
//
// One WinBag interchange file is produced per store found in the sales export,
// named <storecode>_000_<salesdate:YYMMDD>_<time:HHMM>.TXT. Files are created
// empty before any record builder runs; builders then append their rows in a
// fixed sequence.
//
// Each append opens the file, writes, syncs and closes it again. A crash
// mid-run therefore leaves a truncated but never corrupted file, and partial
// progress survives on disk. There is no buffering across builders.
//
// Every field is wrapped in double quotes and rows are comma-joined. The
// interchange format performs no quote escaping; source fields are assumed
// not to contain the quote character.
//
// =============================================================================

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputFile is one destination interchange file, owned by a store code for
// the duration of a run.
type OutputFile struct {
	Store string
	Path  string
}

// FileSet owns every output file of a run, keyed by store code, in the order
// the stores first appear in the sales export.
type FileSet struct {
	files   []*OutputFile
	byStore map[string]*OutputFile
}

// CreateFiles creates one empty output file per resolved store in targetDir.
// salesDate is the batch date in YYMMDD form; now supplies the HHMM part of
// the file name.
func CreateFiles(series *SeriesMap, targetDir, salesDate string, now time.Time) (*FileSet, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create target folder: %w", err)
	}

	fs := &FileSet{byStore: make(map[string]*OutputFile)}
	stamp := now.Format("1504")

	for _, store := range series.Stores() {
		name := fmt.Sprintf("%s_000_%s_%s.TXT", store, salesDate, stamp)
		path := filepath.Join(targetDir, name)

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("failed to close output file %s: %w", name, err)
		}

		out := &OutputFile{Store: store, Path: path}
		fs.files = append(fs.files, out)
		fs.byStore[store] = out
	}

	return fs, nil
}

// All returns the output files in creation order.
func (fs *FileSet) All() []*OutputFile {
	return fs.files
}

// ForStore returns the output file owned by a store code.
func (fs *FileSet) ForStore(store string) (*OutputFile, bool) {
	f, ok := fs.byStore[store]
	return f, ok
}

// Append writes rows to the file: every field double-quoted, comma-joined,
// one line per row, synced to stable storage before returning. Builders call
// this once per file with their full batch of rows.
func (f *OutputFile) Append(rows ...[]string) error {
	if len(rows) == 0 {
		return nil
	}

	handle, err := os.OpenFile(f.Path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", filepath.Base(f.Path), err)
	}
	defer handle.Close()

	var b strings.Builder
	for _, fields := range rows {
		b.WriteString(formatLine(fields))
	}

	if _, err := handle.WriteString(b.String()); err != nil {
		return fmt.Errorf("failed to append to %s: %w", filepath.Base(f.Path), err)
	}
	if err := handle.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", filepath.Base(f.Path), err)
	}
	return nil
}

// formatLine quotes and joins one output row.
func formatLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, field := range fields {
		quoted[i] = `"` + field + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}
