package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zneed99/WinBag2Hiopos/internal/pos"
)

func TestCanonicalSeries(t *testing.T) {
	assert.Equal(t, "T3012", CanonicalSeries("AV312"))
	assert.Equal(t, "T101", CanonicalSeries("AV11"))
	// Already canonical values pass through untouched.
	assert.Equal(t, "T0001", CanonicalSeries("T0001"))
	assert.Equal(t, "AVX12", CanonicalSeries("AVX12"))
	assert.Equal(t, "AV", CanonicalSeries("AV"))
	assert.Equal(t, "", CanonicalSeries(""))
}

func TestBuildSeriesMap(t *testing.T) {
	sales := []pos.SalesRow{
		{Store: "07", Serie: "T0001"},
		{Store: "08", Serie: "T0002"},
		{Store: "07", Serie: "T0001"},
	}

	m := BuildSeriesMap(sales)

	assert.Equal(t, []string{"07", "08"}, m.Stores())

	serie, ok := m.SeriesFor("07")
	require.True(t, ok)
	assert.Equal(t, "T0001", serie)

	store, ok := m.StoreFor("T0002")
	require.True(t, ok)
	assert.Equal(t, "08", store)

	_, ok = m.StoreFor("T9999")
	assert.False(t, ok)
}

// Later rows overwrite earlier ones for the same store code; the reverse map
// follows the settled forward map.
func TestBuildSeriesMapDuplicateStoreLastWins(t *testing.T) {
	sales := []pos.SalesRow{
		{Store: "07", Serie: "T0001"},
		{Store: "07", Serie: "T0009"},
	}

	m := BuildSeriesMap(sales)

	serie, ok := m.SeriesFor("07")
	require.True(t, ok)
	assert.Equal(t, "T0009", serie)

	store, ok := m.StoreFor("T0009")
	require.True(t, ok)
	assert.Equal(t, "07", store)

	_, ok = m.StoreFor("T0001")
	assert.False(t, ok, "overwritten series must no longer resolve")
}

func TestStoreForResolvesAVEncoding(t *testing.T) {
	m := BuildSeriesMap([]pos.SalesRow{{Store: "31", Serie: "T3012"}})

	store, ok := m.StoreFor("AV312")
	require.True(t, ok)
	assert.Equal(t, "31", store)
}
