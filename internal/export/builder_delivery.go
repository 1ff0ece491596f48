// =============================================================================
// WinBag2Hiopos - Delivery Note Records (01/02)
// =============================================================================
//
// The delivery-note export mixes two kinds of lines under one document
// number: detail lines carrying an article code, and a carrier line without
// one whose Reference field belongs to the document as a whole.
//
// For every distinct document number (per output file) exactly one 01
// customer/header record is emitted, taking its identity fields from the
// first line of the group and its reference from the carrier line (empty when
// the group has none). Each detail line with an article code then becomes one
// 02 record; carrier lines produce no 02.
//
// =============================================================================

package export

import (
	"strings"

	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// deliveryGroup accumulates the lines of one document number within one file.
type deliveryGroup struct {
	first     pos.DeliveryRow
	reference string
	details   []pos.DeliveryRow
}

func (r *Run) buildDeliveryRecords() error {
	out := newFileRows()

	// Group lines by (file, document number), preserving encounter order.
	type groupKey struct {
		file   *OutputFile
		number string
	}
	groups := make(map[groupKey]*deliveryGroup)
	var order []groupKey

	for _, row := range r.in.Deliveries {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}

		key := groupKey{file: f, number: row.Number}
		g, seen := groups[key]
		if !seen {
			g = &deliveryGroup{first: row}
			groups[key] = g
			order = append(order, key)
		}

		if strings.TrimSpace(row.Article) == "" {
			// Carrier line: supplies the document reference, no 02 record.
			if g.reference == "" {
				g.reference = row.Reference
			}
		} else {
			g.details = append(g.details, row)
		}
	}

	for _, key := range order {
		g := groups[key]

		out.add(key.file, []string{
			"01",
			g.first.ShopID,
			g.first.ShopID, // the export has no separate register column
			g.first.CustomerID,
			g.first.Date,
			g.reference,
			g.first.Number,
			g.first.Employee,
		})

		for _, d := range g.details {
			out.add(key.file, []string{
				"02",
				d.Article,
				normalize.FormatQuantity(normalize.ParseAmount(d.Quantity)),
				normalize.FormatAmount(normalize.ParseAmount(d.Gross)),
				normalize.FormatAmount(normalize.ParseAmount(d.Net)),
				normalize.PercentCode(d.VATRate),
				normalize.FormatAmount(normalize.ParseAmount(d.Discount)),
			})
		}
	}

	return out.flush()
}
