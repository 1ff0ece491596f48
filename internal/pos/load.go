// =============================================================================
// WinBag2Hiopos - Input Discovery and Loading
// =============================================================================
//
// This module finds the export files for one batch inside the watched folder
// and loads them into typed rows. Files are identified by a keyword in their
// name (the registers name their exports "Försäljning.csv", "Betalsätt.csv",
// and so on, sometimes with a date suffix).
//
// Sales, payment-method and delivery-note exports are mandatory: without them
// no output can be produced and the run aborts before any output file is
// created. The VAT and gift-card exports are optional; when absent, the record
// builders that consume them simply emit nothing.
//
// =============================================================================

package pos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zneed99/WinBag2Hiopos/internal/table"
)

// Keywords names the filename fragments that identify each export kind.
type Keywords struct {
	Sales        string
	Payment      string
	Delivery     string
	VAT          string
	GiftCardUsed string
	GiftCardSold string
}

// DefaultKeywords matches the names the Hiopos registers use out of the box.
func DefaultKeywords() Keywords {
	return Keywords{
		Sales:        "Försäljning",
		Payment:      "Betalsätt",
		Delivery:     "Följesedlar",
		VAT:          "Moms",
		GiftCardUsed: "Presentkort använda",
		GiftCardSold: "Presentkort sålda",
	}
}

// Inputs holds every loaded source table for one run, fully in memory. It is
// read-only once Load returns and is discarded at run end.
type Inputs struct {
	Sales      []SalesRow
	Payments   []PaymentRow
	Deliveries []DeliveryRow
	VAT        []VATRow
	GiftUsed   []GiftCardRow
	GiftSold   []GiftCardRow

	// ConsumedFiles lists every file that was read, in discovery order. The
	// caller archives these after a successful run; nothing here may be
	// touched again once that happens.
	ConsumedFiles []string
}

// MissingRequired returns the keywords of mandatory exports that are not
// present in the folder. An empty result means a batch is complete and ready
// to process.
func MissingRequired(dir string, kw Keywords) []string {
	var missing []string
	for _, keyword := range []string{kw.Sales, kw.Payment, kw.Delivery} {
		if _, ok := findExport(dir, keyword); !ok {
			missing = append(missing, keyword)
		}
	}
	return missing
}

// Load reads one complete batch of exports from dir. A missing mandatory
// export is a fatal precondition and aborts before anything else happens.
func Load(dir string, kw Keywords) (*Inputs, error) {
	in := &Inputs{}

	salesTable, err := loadExport(dir, kw.Sales, true, in)
	if err != nil {
		return nil, err
	}
	paymentTable, err := loadExport(dir, kw.Payment, true, in)
	if err != nil {
		return nil, err
	}
	deliveryTable, err := loadExport(dir, kw.Delivery, true, in)
	if err != nil {
		return nil, err
	}
	vatTable, err := loadExport(dir, kw.VAT, false, in)
	if err != nil {
		return nil, err
	}
	usedTable, err := loadExport(dir, kw.GiftCardUsed, false, in)
	if err != nil {
		return nil, err
	}
	soldTable, err := loadExport(dir, kw.GiftCardSold, false, in)
	if err != nil {
		return nil, err
	}

	if in.Sales, err = salesRows(salesTable); err != nil {
		return nil, err
	}
	if in.Payments, err = paymentRows(paymentTable); err != nil {
		return nil, err
	}
	if in.Deliveries, err = deliveryRows(deliveryTable); err != nil {
		return nil, err
	}
	if vatTable != nil {
		if in.VAT, err = vatRows(vatTable); err != nil {
			return nil, err
		}
	}
	if usedTable != nil {
		if in.GiftUsed, err = giftCardRows(usedTable); err != nil {
			return nil, err
		}
	}
	if soldTable != nil {
		if in.GiftSold, err = giftCardRows(soldTable); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// loadExport locates and parses one export by keyword. Optional exports that
// are absent return a nil table without error.
func loadExport(dir, keyword string, required bool, in *Inputs) (*table.Table, error) {
	path, ok := findExport(dir, keyword)
	if !ok {
		if required {
			return nil, fmt.Errorf("required export %q not found in %s", keyword, dir)
		}
		return nil, nil
	}

	t, err := table.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}

	in.ConsumedFiles = append(in.ConsumedFiles, path)
	return t, nil
}

// findExport scans dir (non-recursively, matching the watcher) for a data
// file whose name contains the keyword.
func findExport(dir, keyword string) (string, bool) {
	if keyword == "" {
		return "", false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".csv" && ext != ".xlsx" {
			continue
		}
		if strings.Contains(name, keyword) {
			return filepath.Join(dir, name), true
		}
	}
	return "", false
}
