package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

// Return documents negate the 06 quantity; the net amount stays as exported.
func TestLineItemReturnNegatesQuantity(t *testing.T) {
	ret := saleRow("T0001", "07", "1002", "10:30:00", "B200", "2", "50,00", "10")
	ret.DocumentType = "2"
	in := &pos.Inputs{Sales: append(baseSales(), ret)}

	lines := runExport(t, in)
	rows := linesWithPrefix(lines, "06")
	require.Len(t, rows, 2)
	assert.Equal(t, `"06","A","1000","10000","1000","anna","1200"`, rows[0])
	assert.Equal(t, `"06","B200","-2000","5000","1030","anna","1200"`, rows[1])
}

// Non-numeric product-group codes are aggregated but never emitted as 08
// records; the numeric groups keep their own totals.
func TestProductGroupNonNumericNotEmitted(t *testing.T) {
	in := &pos.Inputs{Sales: []pos.SalesRow{
		saleRow("T0001", "07", "1001", "10:00:00", "A", "1", "100,00", "10"),
		saleRow("T0001", "07", "1002", "11:00:00", "B", "2", "50,00", "Övrigt"),
		saleRow("T0001", "07", "1003", "12:00:00", "C", "1", "25,00", "10"),
	}}

	lines := runExport(t, in)
	rows := linesWithPrefix(lines, "08")
	require.Len(t, rows, 1)
	assert.Equal(t, `"08","10","2000","12500"`, rows[0])
}

// Returns subtract from the 08 group totals.
func TestProductGroupReturnSubtracts(t *testing.T) {
	ret := saleRow("T0001", "07", "1002", "11:00:00", "A", "1", "40,00", "10")
	ret.DocumentType = "2"
	in := &pos.Inputs{Sales: append(baseSales(), ret)}

	lines := runExport(t, in)
	rows := linesWithPrefix(lines, "08")
	require.Len(t, rows, 1)
	assert.Equal(t, `"08","10","0","6000"`, rows[0])
}
