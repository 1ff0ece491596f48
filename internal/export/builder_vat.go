// =============================================================================
// WinBag2Hiopos - VAT Summary Records (12)
// =============================================================================

package export

import (
	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
)

// buildVAT emits one 12 record per row of the VAT export: rate code, base
// amount, VAT amount and total, all as scaled integers. VAT rows carry a
// store code directly, so routing bypasses the series lookup.
func (r *Run) buildVAT() error {
	out := newFileRows()

	for _, row := range r.in.VAT {
		f, ok := r.fileForStore(row.Store)
		if !ok {
			continue
		}
		out.add(f, []string{
			"12",
			normalize.PercentCode(row.Rate),
			normalize.FormatAmount(normalize.ParseAmount(row.Base)),
			normalize.FormatAmount(normalize.ParseAmount(row.VATAmount)),
			normalize.FormatAmount(normalize.ParseAmount(row.Total)),
		})
	}

	return out.flush()
}
