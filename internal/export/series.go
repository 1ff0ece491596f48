// =============================================================================
// WinBag2Hiopos - Series/Store Resolver
// =============================================================================
//
// Every output row is routed to a destination file through the series value on
// its source row. The sales export is the authority on which store owns which
// series: the map is built once per run from the sales table and then queried
// by every record builder.
//
// Some registers emit an alternate series encoding with an "AV" prefix
// ("AV312") instead of the canonical form ("T3012"). Those values are
// rewritten into canonical form before lookup.
//
// =============================================================================

package export

import (
	"strings"
	"unicode"

	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// SeriesMap relates store codes and series identifiers for one run. Within a
// run a store code maps to exactly one series; when the sales export contains
// the same store with different series values, the last row wins. That
// ambiguity is inherited from the source data and logged upstream rather than
// rejected.
type SeriesMap struct {
	seriesByStore map[string]string
	storeBySeries map[string]string
	storeOrder    []string
}

// BuildSeriesMap derives the store <-> series mapping from the sales rows.
func BuildSeriesMap(sales []pos.SalesRow) *SeriesMap {
	m := &SeriesMap{
		seriesByStore: make(map[string]string),
		storeBySeries: make(map[string]string),
	}

	for _, row := range sales {
		store := strings.TrimSpace(row.Store)
		serie := strings.TrimSpace(row.Serie)
		if store == "" || serie == "" {
			continue
		}
		if _, seen := m.seriesByStore[store]; !seen {
			m.storeOrder = append(m.storeOrder, store)
		}
		m.seriesByStore[store] = serie
	}

	// Reverse index built from the settled forward map so both directions
	// agree after duplicate overwrites.
	for _, store := range m.storeOrder {
		m.storeBySeries[m.seriesByStore[store]] = store
	}

	return m
}

// Stores returns the store codes in order of first appearance in the sales
// export. File creation iterates this so output is deterministic.
func (m *SeriesMap) Stores() []string {
	return m.storeOrder
}

// SeriesFor returns the series a store code maps to.
func (m *SeriesMap) SeriesFor(store string) (string, bool) {
	s, ok := m.seriesByStore[store]
	return s, ok
}

// StoreFor resolves a series value (canonical or AV-encoded) back to its
// store code. A miss means the row cannot be routed to any output file; the
// caller skips it with a warning.
func (m *SeriesMap) StoreFor(serie string) (string, bool) {
	s, ok := m.storeBySeries[CanonicalSeries(serie)]
	return s, ok
}

// CanonicalSeries rewrites an AV-encoded series value into canonical form by
// keeping the digit after the prefix, inserting a zero behind it and swapping
// the prefix for "T": "AV312" -> "T3012". Values that are not AV-encoded are
// returned unchanged.
func CanonicalSeries(serie string) string {
	s := strings.TrimSpace(serie)
	if len(s) < 3 || !strings.HasPrefix(s, "AV") {
		return s
	}
	if !unicode.IsDigit(rune(s[2])) {
		return s
	}
	return "T" + s[2:3] + "0" + s[3:]
}
