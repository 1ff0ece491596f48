// =============================================================================
// WinBag2Hiopos - Sales Records (06 line items, 08 product groups, 10 hourly)
// =============================================================================
//
// Three builders over the sales export:
//
//   06 - one record per sales line: article, quantity, price, compact time,
//        seller and VAT-rate code. Quantities are negated on return documents.
//   08 - quantity and net price summed per product-group code. Groups whose
//        code is not numeric are still aggregated (so the totals balance) but
//        excluded from output.
//   10 - quantity and net price summed per hour-of-day interval.
//
// All aggregation buckets are keyed per output file.
//
// =============================================================================

package export

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// buildLineItems emits the 06 record for every sales row.
func (r *Run) buildLineItems() error {
	out := newFileRows()

	for _, row := range r.in.Sales {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}

		qty := normalize.ParseAmount(row.Quantity)
		if pos.IsReturn(row.DocumentType) {
			qty = qty.Neg()
		}

		out.add(f, []string{
			"06",
			row.Article,
			normalize.FormatQuantity(qty),
			normalize.FormatAmount(normalize.ParseAmount(row.NetAmount)),
			normalize.CompactTime(row.Time),
			row.Employee,
			normalize.PercentCode(row.VATRate),
		})
	}

	return out.flush()
}

// salesBucket accumulates quantity and net price for one aggregation key.
type salesBucket struct {
	quantity decimal.Decimal
	net      decimal.Decimal
}

// salesAgg keys salesBuckets per output file, preserving first-seen order of
// both files and keys for deterministic output.
type salesAgg struct {
	byFile    map[*OutputFile]map[string]*salesBucket
	fileOrder []*OutputFile
	keyOrder  map[*OutputFile][]string
}

func newSalesAgg() *salesAgg {
	return &salesAgg{
		byFile:   make(map[*OutputFile]map[string]*salesBucket),
		keyOrder: make(map[*OutputFile][]string),
	}
}

func (a *salesAgg) add(f *OutputFile, key string, qty, net decimal.Decimal) {
	buckets, ok := a.byFile[f]
	if !ok {
		buckets = make(map[string]*salesBucket)
		a.byFile[f] = buckets
		a.fileOrder = append(a.fileOrder, f)
	}
	b, ok := buckets[key]
	if !ok {
		b = &salesBucket{}
		buckets[key] = b
		a.keyOrder[f] = append(a.keyOrder[f], key)
	}
	b.quantity = b.quantity.Add(qty)
	b.net = b.net.Add(net)
}

// buildProductGroups emits the 08 record per product-group code.
func (r *Run) buildProductGroups() error {
	agg := newSalesAgg()

	for _, row := range r.in.Sales {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}

		qty := normalize.ParseAmount(row.Quantity)
		net := normalize.ParseAmount(row.NetAmount)
		if pos.IsReturn(row.DocumentType) {
			qty = qty.Neg()
			net = net.Neg()
		}
		agg.add(f, strings.TrimSpace(row.ProductGroup), qty, net)
	}

	out := newFileRows()
	for _, f := range agg.fileOrder {
		for _, group := range agg.keyOrder[f] {
			if _, err := strconv.Atoi(group); err != nil {
				// Aggregated but not emitted: the interchange side only
				// accepts numeric group codes.
				r.log.WithField("run", r.ID).
					Warnf("product group %q is not numeric, not emitted", group)
				continue
			}
			b := agg.byFile[f][group]
			out.add(f, []string{
				"08",
				group,
				normalize.FormatQuantity(b.quantity),
				normalize.FormatAmount(b.net),
			})
		}
	}

	return out.flush()
}

// buildHourly emits the 10 record per hour-of-day interval.
func (r *Run) buildHourly() error {
	agg := newSalesAgg()

	for _, row := range r.in.Sales {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}
		agg.add(f, normalize.HourBucket(row.Time),
			normalize.ParseAmount(row.Quantity),
			normalize.ParseAmount(row.NetAmount))
	}

	out := newFileRows()
	for _, f := range agg.fileOrder {
		for _, bucket := range agg.keyOrder[f] {
			b := agg.byFile[f][bucket]
			out.add(f, []string{
				"10",
				bucket,
				normalize.FormatQuantity(b.quantity),
				normalize.FormatAmount(b.net),
			})
		}
	}

	return out.flush()
}
