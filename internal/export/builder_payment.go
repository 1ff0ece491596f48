// =============================================================================
// WinBag2Hiopos - Payment Aggregation Records (04)
// =============================================================================
//
// The 04 records summarize money movement per payment method and per output
// file. Sale documents add to the debit sum, return documents add their
// absolute amount to the credit sum. The registers occasionally repeat a
// payment line for the same receipt; a (document, method, amount) key
// deduplicates those so a receipt is never counted twice.
//
// Gift cards sold over the counter are money in that never appears in the
// payment export, so their amounts merge into the debit sum of the method
// the card was bought with.
//
// Two pseudo payment methods get their own 04 rows: "Följesedlar" carries the
// delivery-note net total and "Presentkort" the redeemed gift-card total.
// Aggregation state is keyed per output file; sums never leak across stores.
//
// =============================================================================

package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Zneed99/WinBag2Hiopos/internal/normalize"
	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// Pseudo payment methods for the parallel aggregations.
const (
	methodDeliveryNotes = "Följesedlar"
	methodGiftCards     = "Presentkort"
)

// paymentBucket is the per-(file, method) accumulator. It lives only for the
// duration of this builder's pass.
type paymentBucket struct {
	suffix string // accounting suffix, first one seen wins
	debit  decimal.Decimal
	credit decimal.Decimal
}

// paymentAgg keys buckets by payment method for a single output file.
type paymentAgg struct {
	buckets map[string]*paymentBucket
	order   []string
	seen    map[paymentDedupKey]bool
}

// paymentDedupKey identifies a source payment line: a repeated line for the
// same receipt, method and amount must not be double-counted.
type paymentDedupKey struct {
	number string
	method string
	amount string
}

func newPaymentAgg() *paymentAgg {
	return &paymentAgg{
		buckets: make(map[string]*paymentBucket),
		seen:    make(map[paymentDedupKey]bool),
	}
}

func (a *paymentAgg) bucket(method, suffix string) *paymentBucket {
	b, ok := a.buckets[method]
	if !ok {
		b = &paymentBucket{suffix: suffix}
		a.buckets[method] = b
		a.order = append(a.order, method)
	}
	if b.suffix == "" {
		b.suffix = suffix
	}
	return b
}

func (r *Run) buildPaymentRecords() error {
	aggs := make(map[*OutputFile]*paymentAgg)
	var fileOrder []*OutputFile

	aggFor := func(f *OutputFile) *paymentAgg {
		a, ok := aggs[f]
		if !ok {
			a = newPaymentAgg()
			aggs[f] = a
			fileOrder = append(fileOrder, f)
		}
		return a
	}

	// Payment-method export: debit on sales, absolute credit on returns,
	// deduplicated per file.
	for _, row := range r.in.Payments {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}
		a := aggFor(f)

		key := paymentDedupKey{
			number: row.Number,
			method: row.Method,
			amount: strings.TrimSpace(row.Amount),
		}
		if a.seen[key] {
			r.log.WithField("run", r.ID).
				Warnf("duplicate payment line for receipt %s (%s), skipping", row.Number, row.Method)
			continue
		}
		a.seen[key] = true

		amount := normalize.ParseAmount(row.Amount)
		b := a.bucket(row.Method, row.Suffix)
		if pos.IsReturn(row.DocumentType) {
			b.credit = b.credit.Add(amount.Abs())
		} else {
			b.debit = b.debit.Add(amount)
		}
	}

	// Gift cards sold: additional debit under the purchasing method.
	for _, row := range r.in.GiftSold {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}
		method := row.Method
		if strings.TrimSpace(method) == "" {
			method = methodGiftCards
		}
		b := aggFor(f).bucket(method, "")
		b.debit = b.debit.Add(normalize.ParseAmount(row.Amount))
	}

	// Delivery notes: net totals under the "Följesedlar" pseudo method.
	for _, row := range r.in.Deliveries {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}
		b := aggFor(f).bucket(methodDeliveryNotes, "")
		b.debit = b.debit.Add(normalize.ParseAmount(row.Net))
	}

	// Gift cards redeemed: totals under the "Presentkort" pseudo method.
	for _, row := range r.in.GiftUsed {
		f, ok := r.fileForSerie(row.Serie)
		if !ok {
			continue
		}
		b := aggFor(f).bucket(methodGiftCards, "")
		b.debit = b.debit.Add(normalize.ParseAmount(row.Amount))
	}

	out := newFileRows()
	for _, f := range fileOrder {
		a := aggs[f]
		for _, method := range a.order {
			b := a.buckets[method]
			out.add(f, []string{
				"04",
				method,
				b.suffix,
				normalize.FormatAmount(b.debit),
				normalize.FormatAmount(b.credit),
			})
		}
	}

	return out.flush()
}
