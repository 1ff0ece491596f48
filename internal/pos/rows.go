// =============================================================================
// WinBag2Hiopos - Typed Source Rows
// =============================================================================
//
// One struct per Hiopos export kind. The registers export row-oriented tables
// whose cells are raw strings; this module gives each table a fixed shape and
// verifies the required columns once, at load time, so a renamed or missing
// column fails the run immediately instead of deep inside a record builder.
//
// Amount, quantity and time cells stay raw strings here. Normalization is a
// builder concern: a malformed amount must still contribute a zero to the
// aggregation totals, and only the builders know which default applies.
//
// =============================================================================

package pos

import (
	"strings"

	"github.com/Zneed99/WinBag2Hiopos/internal/table"
)

// SalesRow is one line of the Försäljning (sales) export.
type SalesRow struct {
	Serie        string
	Store        string
	Register     string
	Number       string
	Date         string // day/month/year as exported
	Time         string // "HH:MM:SS"
	DocumentType string
	Article      string
	Quantity     string
	NetAmount    string
	Employee     string
	VATRate      string // "12%"
	ProductGroup string
}

// PaymentRow is one line of the Betalsätt (payment method) export.
type PaymentRow struct {
	Serie        string
	Number       string
	Method       string
	Amount       string
	DocumentType string
	Suffix       string // Bokföringssuffix, the ledger account code
}

// DeliveryRow is one line of the Följesedlar (delivery note) export.
type DeliveryRow struct {
	Serie      string
	ShopID     string
	CustomerID string
	Date       string
	Reference  string
	Number     string
	Employee   string
	Article    string
	Quantity   string
	Gross      string
	Net        string
	VATRate    string
	Discount   string
}

// VATRow is one line of the Moms (VAT summary) export.
type VATRow struct {
	Store     string
	Rate      string
	Base      string
	VATAmount string
	Total     string
}

// GiftCardRow is one line of either Presentkort export. Method is only
// populated for sold cards, where it names the payment method the card was
// bought with.
type GiftCardRow struct {
	Serie  string
	Number string
	Amount string
	Method string
}

// IsReturn reports whether a document type marks a return/credit document.
// The registers export either the numeric type code or a localized name.
func IsReturn(documentType string) bool {
	s := strings.ToLower(strings.TrimSpace(documentType))
	return s == "2" || strings.Contains(s, "retur") || strings.Contains(s, "return")
}

// =============================================================================
// TABLE -> TYPED ROW CONVERSION
// =============================================================================

func salesRows(t *table.Table) ([]SalesRow, error) {
	if err := t.Require("Serie", "Store", "Cash Register", "Number", "Date", "Time",
		"Document Type", "Product", "Qty.", "Net Amount", "Employee", "VAT %",
		"Product Group"); err != nil {
		return nil, err
	}

	rows := make([]SalesRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = SalesRow{
			Serie:        r["Serie"],
			Store:        r["Store"],
			Register:     r["Cash Register"],
			Number:       r["Number"],
			Date:         r["Date"],
			Time:         r["Time"],
			DocumentType: r["Document Type"],
			Article:      r["Product"],
			Quantity:     r["Qty."],
			NetAmount:    r["Net Amount"],
			Employee:     r["Employee"],
			VATRate:      r["VAT %"],
			ProductGroup: r["Product Group"],
		}
	}
	return rows, nil
}

func paymentRows(t *table.Table) ([]PaymentRow, error) {
	if err := t.Require("Serie", "Number", "Payment Method", "Amount",
		"Document Type", "Accounting Suffix"); err != nil {
		return nil, err
	}

	rows := make([]PaymentRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = PaymentRow{
			Serie:        r["Serie"],
			Number:       r["Number"],
			Method:       r["Payment Method"],
			Amount:       r["Amount"],
			DocumentType: r["Document Type"],
			Suffix:       r["Accounting Suffix"],
		}
	}
	return rows, nil
}

func deliveryRows(t *table.Table) ([]DeliveryRow, error) {
	if err := t.Require("Serie", "Id. Shop", "Customer Id.", "Date", "Reference",
		"Number", "Employee", "Product", "Qty.1", "Gross Amount", "Net Amount",
		"VAT %", "Discount Amount"); err != nil {
		return nil, err
	}

	rows := make([]DeliveryRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = DeliveryRow{
			Serie:      r["Serie"],
			ShopID:     r["Id. Shop"],
			CustomerID: r["Customer Id."],
			Date:       r["Date"],
			Reference:  r["Reference"],
			Number:     r["Number"],
			Employee:   r["Employee"],
			Article:    r["Product"],
			Quantity:   r["Qty.1"],
			Gross:      r["Gross Amount"],
			Net:        r["Net Amount"],
			VATRate:    r["VAT %"],
			Discount:   r["Discount Amount"],
		}
	}
	return rows, nil
}

func vatRows(t *table.Table) ([]VATRow, error) {
	if err := t.Require("Store", "VAT %", "Base Amount", "VAT Amount",
		"Total Amount"); err != nil {
		return nil, err
	}

	rows := make([]VATRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = VATRow{
			Store:     r["Store"],
			Rate:      r["VAT %"],
			Base:      r["Base Amount"],
			VATAmount: r["VAT Amount"],
			Total:     r["Total Amount"],
		}
	}
	return rows, nil
}

func giftCardRows(t *table.Table) ([]GiftCardRow, error) {
	if err := t.Require("Serie", "Number", "Amount"); err != nil {
		return nil, err
	}

	rows := make([]GiftCardRow, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = GiftCardRow{
			Serie:  r["Serie"],
			Number: r["Number"],
			Amount: r["Amount"],
			Method: r["Payment Method"], // absent column reads as ""
		}
	}
	return rows, nil
}
