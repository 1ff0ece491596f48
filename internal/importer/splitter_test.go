package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func splitFixture(t *testing.T, content string) (*Result, string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "pcs.adm")
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	outDir := filepath.Join(dir, "Imported Files")
	res, err := Split(input, outDir, time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	return res, outDir
}

func fileLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestSplitClassifiesRecords(t *testing.T) {
	// One of each record family plus the header/footer that must be ignored.
	articleTail := strings.Repeat(`,""`, 10) // pad the 02 record to its full width
	content := strings.Join([]string{
		`"00","header"`,
		`"01","x","y","0398","The Swedish Club","Gullbergsstrandgata 6","Leveranskunder hotell"`,
		`"11","x","y","0399","Second Customer","Street 1","Desc"`,
		`"02","x","y","2","Soppa TA","555","60","63","7500","1200","7500"` + articleTail,
		`"03","x","y","z","10","","Huvudgrupp A"`,
		`"33","x","y","z","10","101","Varugrupp B"`,
		`"99"`,
	}, "\n") + "\n"

	res, _ := splitFixture(t, content)

	assert.Equal(t, 7, res.LinesRead)
	assert.Equal(t, 2, res.LinesIgnored)

	customers := fileLines(t, res.Customers)
	require.Len(t, customers, 2)
	assert.Equal(t, "False ; 0398 ; The Swedish Club ; Gullbergsstrandgata 6 ; Leveranskunder hotell", customers[0])
	assert.Equal(t, "True ; 0399 ; Second Customer ; Street 1 ; Desc", customers[1])

	articles := fileLines(t, res.Articles)
	require.Len(t, articles, 1)
	assert.Equal(t, "False ; 2 ; Soppa TA ; 60 ; 63 ; 75", articles[0])

	main := fileLines(t, res.MainGroups)
	require.Len(t, main, 1)
	assert.Equal(t, "False ; 10 ; Huvudgrupp A", main[0])

	sub := fileLines(t, res.SubGroups)
	require.Len(t, sub, 1)
	assert.Equal(t, "True ; 10 ; 101 ; Varugrupp B", sub[0])
}

// A record too short for its transform yields an empty output line instead of
// failing the file.
func TestSplitShortRecordYieldsEmptyLine(t *testing.T) {
	res, _ := splitFixture(t, `"01","only","four","fields"`+"\n")

	customers := fileLines(t, res.Customers)
	require.Len(t, customers, 1)
	assert.Equal(t, "", customers[0])
}

func TestSplitMissingInputFile(t *testing.T) {
	_, err := Split(filepath.Join(t.TempDir(), "nope.adm"), t.TempDir(), time.Now(), nil)
	assert.Error(t, err)
}

func TestSplitOutputNamesCarryTimestamp(t *testing.T) {
	res, outDir := splitFixture(t, `"99"`+"\n")

	assert.Equal(t, filepath.Join(outDir, "file_01_11.20260102-09-30-00.csv"), res.Customers)
	assert.Equal(t, filepath.Join(outDir, "file_artiklar.20260102-09-30-00.csv"), res.Articles)
	assert.Equal(t, filepath.Join(outDir, "file_huvudgrupp.20260102-09-30-00.csv"), res.MainGroups)
	assert.Equal(t, filepath.Join(outDir, "file_varugrupp.20260102-09-30-00.csv"), res.SubGroups)
}

// Non-ASCII text survives the windows-1252 decode/re-encode on both sides:
// the derived file holds the legacy bytes and decodes back to the original.
func TestSplitKeepsWindows1252Encoding(t *testing.T) {
	name := "Försäljningskund Åäö"
	legacy, err := charmap.Windows1252.NewEncoder().String(name)
	require.NoError(t, err)

	res, _ := splitFixture(t,
		`"01","x","y","0398","`+legacy+`","Street 1","Desc"`+"\n")

	data, err := os.ReadFile(res.Customers)
	require.NoError(t, err)
	assert.Contains(t, string(data), legacy)

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), name)
}

func TestCleanPrice(t *testing.T) {
	assert.Equal(t, "75", cleanPrice("7500"))
	assert.Equal(t, "12", cleanPrice("1200"))
	assert.Equal(t, "60", cleanPrice("0060"))
	assert.Equal(t, "0", cleanPrice("0000"))
	assert.Equal(t, "0", cleanPrice(""))
}
