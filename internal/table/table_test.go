package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "Försäljning.csv",
		"Serie;Store;Amount\nT0001;07;150,00\nT0001;07;50,00\n")

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Serie", "Store", "Amount"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "T0001", tbl.Rows[0]["Serie"])
	assert.Equal(t, "150,00", tbl.Rows[0]["Amount"])
}

func TestLoadCSVSkipsBlankRowsAndPadsShortOnes(t *testing.T) {
	path := writeTemp(t, "export.csv",
		"A;B;C\n1;2;3\n;;\n4;5\n")

	tbl, err := LoadCSV(path)
	require.NoError(t, err)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "5", tbl.Rows[1]["B"])
	assert.Equal(t, "", tbl.Rows[1]["C"])
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.csv", "")

	_, err := LoadCSV(path)
	assert.Error(t, err)
}

func TestRequire(t *testing.T) {
	tbl := &Table{Headers: []string{"Serie", "Store"}, Source: "x.csv"}

	assert.NoError(t, tbl.Require("Serie", "Store"))

	err := tbl.Require("Serie", "Number", "Amount")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Number")
	assert.Contains(t, err.Error(), "Amount")
}

func TestBlankHeaderGetsPlaceholder(t *testing.T) {
	path := writeTemp(t, "h.csv", "A;;C\n1;2;3\n")

	tbl, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Column_2", "C"}, tbl.Headers)
}
