package frame

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_Columns(t *testing.T) {
	f := New(3)
	require.NoError(t, f.SetColumn(ColPrice, []float64{1, 2, 3}))
	require.NoError(t, f.SetColumn(ColResearch1, []float64{4, 5, 6}))

	assert.Equal(t, 3, f.Len())
	assert.True(t, f.Has(ColPrice))
	assert.False(t, f.Has(ColAllocation))
	assert.Equal(t, []string{ColPrice, ColResearch1}, f.Columns())

	col, err := f.Column(ColPrice)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, col)

	_, err = f.Column("missing")
	assert.Error(t, err)

	assert.Error(t, f.SetColumn("bad", []float64{1}), "length mismatch must be rejected")

	assert.NoError(t, f.Require(ColPrice, ColResearch1))
	assert.Error(t, f.Require(ColPrice, ColMid))
}

func TestFrame_SetConstAndReplace(t *testing.T) {
	f := New(2)
	f.SetConst(ColAllocation, 0.5)
	col, err := f.Column(ColAllocation)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, col)

	// Replacing a column must not duplicate it in the order.
	require.NoError(t, f.SetColumn(ColAllocation, []float64{1, 2}))
	assert.Equal(t, []string{ColAllocation}, f.Columns())
}

func TestCSV_RoundTrip(t *testing.T) {
	f := New(3)
	require.NoError(t, f.SetColumn(ColPrice, []float64{100, 101.5, 99}))
	require.NoError(t, f.SetColumn(ColResearch1, []float64{1, math.NaN(), 3}))

	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, f.WriteCSV(path))

	loaded, err := FromCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Len())

	price, err := loaded.Column(ColPrice)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101.5, 99}, price)

	research, err := loaded.Column(ColResearch1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, research[0])
	assert.True(t, math.IsNaN(research[1]), "empty cells load as NaN")
	assert.Equal(t, 3.0, research[2])
}

func TestCSV_MidFallsBackToPrice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("price\n100\n101\n"), 0644))

	f, err := FromCSV(path)
	require.NoError(t, err)
	require.True(t, f.Has(ColMid))

	mid, err := f.Column(ColMid)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101}, mid)

	// The fallback must be a copy, not an alias.
	mid[0] = -1
	price, err := f.Column(ColPrice)
	require.NoError(t, err)
	assert.Equal(t, 100.0, price[0])
}

func TestCSV_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("price\nnot-a-number\n"), 0644))

	_, err := FromCSV(path)
	assert.Error(t, err)
}
