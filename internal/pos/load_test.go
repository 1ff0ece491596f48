package pos

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	salesHeader    = "Serie;Store;Cash Register;Number;Date;Time;Document Type;Product;Qty.;Net Amount;Employee;VAT %;Product Group"
	paymentHeader  = "Serie;Number;Payment Method;Amount;Document Type;Accounting Suffix"
	deliveryHeader = "Serie;Id. Shop;Customer Id.;Date;Reference;Number;Employee;Product;Qty.1;Gross Amount;Net Amount;VAT %;Discount Amount"
)

func writeBatch(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func minimalBatch() map[string]string {
	return map[string]string{
		"Försäljning.csv": salesHeader + "\n" +
			"T0001;07;1;1001;02/01/2026;09:30:00;1;A100;1;150,00;anna;12%;10\n",
		"Betalsätt.csv": paymentHeader + "\n" +
			"T0001;1001;Kort;150,00;1;1930\n",
		"Följesedlar.csv": deliveryHeader + "\n" +
			"T0001;07;C55;02/01/2026;REF-1;2001;anna;A100;2;100,00;80,00;12%;0,00\n",
	}
}

func TestLoadCompleteBatch(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, minimalBatch())

	in, err := Load(dir, DefaultKeywords())
	require.NoError(t, err)

	require.Len(t, in.Sales, 1)
	assert.Equal(t, "T0001", in.Sales[0].Serie)
	assert.Equal(t, "07", in.Sales[0].Store)
	assert.Equal(t, "150,00", in.Sales[0].NetAmount)

	require.Len(t, in.Payments, 1)
	assert.Equal(t, "Kort", in.Payments[0].Method)
	assert.Equal(t, "1930", in.Payments[0].Suffix)

	require.Len(t, in.Deliveries, 1)
	assert.Equal(t, "2001", in.Deliveries[0].Number)

	// Optional exports were absent, which is fine.
	assert.Empty(t, in.VAT)
	assert.Empty(t, in.GiftUsed)
	assert.Empty(t, in.GiftSold)

	assert.Len(t, in.ConsumedFiles, 3)
}

func TestLoadMissingMandatoryExport(t *testing.T) {
	dir := t.TempDir()
	files := minimalBatch()
	delete(files, "Betalsätt.csv")
	writeBatch(t, dir, files)

	_, err := Load(dir, DefaultKeywords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Betalsätt")
}

func TestLoadMissingColumnFailsAtLoadTime(t *testing.T) {
	dir := t.TempDir()
	files := minimalBatch()
	files["Försäljning.csv"] = "Serie;Store\nT0001;07\n"
	writeBatch(t, dir, files)

	_, err := Load(dir, DefaultKeywords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestMissingRequired(t *testing.T) {
	dir := t.TempDir()
	writeBatch(t, dir, map[string]string{
		"Försäljning.csv": salesHeader + "\n",
	})

	missing := MissingRequired(dir, DefaultKeywords())
	assert.ElementsMatch(t, []string{"Betalsätt", "Följesedlar"}, missing)

	writeBatch(t, dir, minimalBatch())
	assert.Empty(t, MissingRequired(dir, DefaultKeywords()))
}

func TestIsReturn(t *testing.T) {
	assert.True(t, IsReturn("2"))
	assert.True(t, IsReturn("Retur"))
	assert.True(t, IsReturn("Return receipt"))
	assert.False(t, IsReturn("1"))
	assert.False(t, IsReturn("Sale"))
}
