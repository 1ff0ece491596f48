// =============================================================================
// WinBag2Hiopos - Value Normalizers
// =============================================================================
//
// Pure conversion functions between the locale-formatted values found in the
// Hiopos exports and the fixed-width fields of the WinBag interchange format.
//
// The exports are inconsistent about numeric formatting: amounts arrive with
// either a comma or a period as the decimal separator, sometimes with the
// other symbol as a thousands separator. The WinBag side encodes currency as
// scaled integers without a decimal point (hundredths for amounts, thousandths
// for quantities).
//
// All functions in this package are total: malformed input produces a safe
// default value, never an error. Missing-column failures are caught earlier,
// when the typed source rows are loaded.
//
// =============================================================================

package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// log is the package logger. Callers that want normalizer warnings routed
// elsewhere can replace it via SetLogger.
var log = logrus.StandardLogger()

// SetLogger replaces the logger used for parse warnings.
func SetLogger(l *logrus.Logger) {
	log = l
}

// =============================================================================
// AMOUNT PARSING
// =============================================================================

// ParseAmount converts a raw amount string into a decimal value.
//
// The exports use either comma or period as the decimal separator, and may use
// the other symbol to group thousands. Disambiguation:
//
//   - If a comma is present it is the decimal separator; periods are grouping
//     symbols and are stripped. "1.234,50" -> 1234.50
//   - Otherwise, a period is treated as the decimal separator only when the
//     trailing group has exactly two digits and the leading group at most
//     three. "150.00" -> 150.00, but "1.234" -> 1234 and "12.345" -> 12345.
//
// A value that still fails to parse yields zero with a logged warning; the row
// keeps contributing to aggregation totals with the default rather than being
// silently dropped.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	// Tolerate surrounding currency noise and non-breaking spaces.
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ",") {
		// Comma is the decimal separator; periods are thousands grouping.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Contains(s, ".") {
		if !periodIsDecimal(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		log.Warnf("could not parse amount %q, using 0", raw)
		return decimal.Zero
	}
	return d
}

// periodIsDecimal reports whether the single-period form of an amount should
// be read as a decimal point rather than a thousands separator.
func periodIsDecimal(s string) bool {
	idx := strings.LastIndex(s, ".")
	if strings.Count(s, ".") != 1 {
		return false
	}
	head := strings.TrimLeft(s[:idx], "-+")
	tail := s[idx+1:]
	return len(tail) == 2 && len(head) <= 3
}

// =============================================================================
// SCALED-INTEGER FORMATTING
// =============================================================================

// FormatAmount renders a decimal amount as a scaled integer string with two
// implied decimal digits. 150.00 -> "15000", -7.5 -> "-750".
func FormatAmount(d decimal.Decimal) string {
	return scaledInteger(d, 2)
}

// FormatQuantity renders a quantity as a scaled integer string with three
// implied decimal digits. 2 -> "2000", 0.5 -> "500".
func FormatQuantity(d decimal.Decimal) string {
	return scaledInteger(d, 3)
}

// scaledInteger shifts the decimal point right by the given number of digits
// and truncates anything beyond it, so the result is a plain integer string.
func scaledInteger(d decimal.Decimal, places int32) string {
	return d.Shift(places).Truncate(0).String()
}

// =============================================================================
// VAT-RATE CODES
// =============================================================================

// PercentCode converts a percentage string such as "12%" or "12 %" into the
// fixed-width rate code the interchange format expects: "1200". Input without
// a percent sign is padded the same way.
func PercentCode(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	return s + "00"
}

// =============================================================================
// TIME HANDLING
// =============================================================================

// HourBucket maps a "HH:MM:SS" time of day onto its hourly interval label,
// "9.00 - 10.00". Hour 23 wraps to "23.00 - 0.00". Malformed input falls into
// the zero bucket with a warning.
func HourBucket(timeOfDay string) string {
	h, _, ok := splitClock(timeOfDay)
	if !ok {
		log.Warnf("could not parse time %q, bucketing as hour 0", timeOfDay)
		h = 0
	}
	next := (h + 1) % 24
	return fmt.Sprintf("%d.00 - %d.00", h, next)
}

// CompactTime reduces a "HH:MM:SS" time of day to "HHMM". Malformed input
// yields "0000" with a warning.
func CompactTime(timeOfDay string) string {
	h, m, ok := splitClock(timeOfDay)
	if !ok {
		log.Warnf("could not parse time %q, using 0000", timeOfDay)
		return "0000"
	}
	return fmt.Sprintf("%02d%02d", h, m)
}

// splitClock parses the hour and minute out of a "HH:MM" or "HH:MM:SS" value.
func splitClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err1 := parseInt(parts[0])
	m, err2 := parseInt(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// =============================================================================
// FIXED-WIDTH PADDING
// =============================================================================

// ZeroPad2 left-pads a small non-negative integer to two digits.
func ZeroPad2(n int) string {
	return fmt.Sprintf("%02d", n)
}

// ZeroPad3 left-pads a small non-negative integer to three digits.
func ZeroPad3(n int) string {
	return fmt.Sprintf("%03d", n)
}

// =============================================================================
// DATE HANDLING
// =============================================================================

// ReorderDate converts a day/month/year date string into year-month-day form,
// keeping the original digits. "02/01/2026" -> "2026-01-02". Both "/" and "-"
// separators are accepted. Input that does not split into three parts is
// returned unchanged.
func ReorderDate(raw string) string {
	s := strings.TrimSpace(raw)
	sep := "/"
	if !strings.Contains(s, "/") && strings.Contains(s, "-") {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return s
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}

// CompactDate converts a day/month/year date string into "YYMMDD" for output
// file names. "02/01/2026" -> "260102". Input that does not split into three
// parts yields "000000" with a warning.
func CompactDate(raw string) string {
	s := strings.TrimSpace(raw)
	sep := "/"
	if !strings.Contains(s, "/") && strings.Contains(s, "-") {
		sep = "-"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		log.Warnf("could not parse date %q, using 000000", raw)
		return "000000"
	}
	year := parts[2]
	if len(year) == 4 {
		year = year[2:]
	}
	return pad2(year) + pad2(parts[1]) + pad2(parts[0])
}

// pad2 left-pads a one-character field with a zero.
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
