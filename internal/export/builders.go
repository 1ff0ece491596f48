// =============================================================================
// WinBag2Hiopos - Constant Record Builders (00, 03/05/07/09/11, 99)
// =============================================================================

package export

import (
	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
)

// Format tag carried in every 00 header record, fixed by the WinBag side.
var headerRecord = []string{"00", "20120720_001", "1.3.15"}

// footerRecord closes every interchange file.
var footerRecord = []string{"99"}

// writeHeaders emits the 00 record as the first line of every output file.
func (r *Run) writeHeaders() error {
	for _, f := range r.files.All() {
		if err := f.Append(headerRecord); err != nil {
			return err
		}
	}
	return nil
}

// writeFooters emits the 99 record as the last line of every output file.
// No builder runs after this.
func (r *Run) writeFooters() error {
	for _, f := range r.files.All() {
		if err := f.Append(footerRecord); err != nil {
			return err
		}
	}
	return nil
}

// buildStoreIdentity emits one constant row per file carrying the store code,
// register code and sales date (reordered to year-month-day). The interchange
// format repeats this data under several record types (03, 05, 07, 09, 11)
// for downstream compatibility, so the builder is parameterized on the code.
func (r *Run) buildStoreIdentity(code string) error {
	for _, f := range r.files.All() {
		first, ok := r.firstSale[f.Store]
		if !ok {
			// Cannot happen: files are created from the sales table.
			continue
		}
		row := []string{code, f.Store, first.Register, normalize.ReorderDate(first.Date)}
		if err := f.Append(row); err != nil {
			return err
		}
	}
	return nil
}
