package normalize

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"comma decimal", "150,00", "150"},
		{"comma decimal with fraction", "7,50", "7.5"},
		{"comma decimal with period grouping", "1.234,50", "1234.5"},
		{"period decimal", "150.00", "150"},
		{"period grouping three digits", "1.234", "1234"},
		{"period grouping long head", "12345.678", "12345678"},
		{"plain integer", "42", "42"},
		{"negative comma", "-50,25", "-50.25"},
		{"empty", "", "0"},
		{"garbage", "abc", "0"},
		{"spaces", " 99,90 ", "99.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := ParseAmount(tt.raw)
			assert.True(t, want.Equal(got), "ParseAmount(%q) = %s, want %s", tt.raw, got, want)
		})
	}
}

// Amounts written as scaled integers must re-parse to the same value when the
// source format is unambiguous.
func TestParseAmountFormatRoundTrip(t *testing.T) {
	for _, raw := range []string{"150,00", "0,01", "1.234,56", "99.95", "-7,50"} {
		d := ParseAmount(raw)
		scaled := FormatAmount(d)

		cents, err := decimal.NewFromString(scaled)
		require.NoError(t, err)
		assert.True(t, d.Equal(cents.Shift(-2)),
			"round trip for %q: parsed %s, scaled %s", raw, d, scaled)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "15000", FormatAmount(decimal.RequireFromString("150")))
	assert.Equal(t, "750", FormatAmount(decimal.RequireFromString("7.5")))
	assert.Equal(t, "-5000", FormatAmount(decimal.RequireFromString("-50")))
	assert.Equal(t, "0", FormatAmount(decimal.Zero))
	// Sub-cent precision is truncated, not rounded.
	assert.Equal(t, "199", FormatAmount(decimal.RequireFromString("1.999")))
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2000", FormatQuantity(decimal.RequireFromString("2")))
	assert.Equal(t, "500", FormatQuantity(decimal.RequireFromString("0.5")))
	assert.Equal(t, "-1000", FormatQuantity(decimal.RequireFromString("-1")))
}

func TestPercentCode(t *testing.T) {
	assert.Equal(t, "1200", PercentCode("12%"))
	assert.Equal(t, "1200", PercentCode("12 %"))
	assert.Equal(t, "600", PercentCode("6%"))
	assert.Equal(t, "2500", PercentCode("25"))
	assert.Equal(t, "0", PercentCode(""))
}

func TestHourBucket(t *testing.T) {
	assert.Equal(t, "23.00 - 0.00", HourBucket("23:45:00"))
	assert.Equal(t, "0.00 - 1.00", HourBucket("00:10:00"))
	assert.Equal(t, "9.00 - 10.00", HourBucket("09:59:59"))
	assert.Equal(t, "12.00 - 13.00", HourBucket("12:00"))
	// Malformed times land in the zero bucket instead of failing the run.
	assert.Equal(t, "0.00 - 1.00", HourBucket("not a time"))
}

func TestCompactTime(t *testing.T) {
	assert.Equal(t, "0945", CompactTime("09:45:12"))
	assert.Equal(t, "2359", CompactTime("23:59:59"))
	assert.Equal(t, "0000", CompactTime(""))
}

func TestZeroPad(t *testing.T) {
	assert.Equal(t, "07", ZeroPad2(7))
	assert.Equal(t, "12", ZeroPad2(12))
	assert.Equal(t, "007", ZeroPad3(7))
	assert.Equal(t, "123", ZeroPad3(123))
}

func TestReorderDate(t *testing.T) {
	assert.Equal(t, "2026-01-02", ReorderDate("02/01/2026"))
	assert.Equal(t, "2026-01-02", ReorderDate("02-01-2026"))
	assert.Equal(t, "whatever", ReorderDate("whatever"))
}

func TestCompactDate(t *testing.T) {
	assert.Equal(t, "260102", CompactDate("02/01/2026"))
	assert.Equal(t, "991231", CompactDate("31/12/1999"))
	assert.Equal(t, "000000", CompactDate("bad"))
}
