package report

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/levelrel"
)

func TestWriteXLSX(t *testing.T) {
	f := frame.New(3)
	require.NoError(t, f.SetColumn(frame.ColPrice, []float64{100, 101, 102}))
	require.NoError(t, f.SetColumn(frame.ColAllocation, []float64{0.5, math.NaN(), 1}))

	res := &levelrel.Result{
		Windows: []levelrel.WindowReport{
			{PredictionIndex: 6, Status: levelrel.WindowFitted, Allocation: 0.5, Volatility: 0.01, ModelError: 0},
			{PredictionIndex: 7, Status: levelrel.WindowDegenerate, Volatility: 1, FlatSeries: []string{"research"}},
		},
		Fitted:     1,
		Degenerate: 1,
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, "level_relationship", f, res))

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Allocations")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"price", "allocation"}, rows[0])
	assert.Equal(t, []string{"100", "0.5"}, rows[1])
	assert.Equal(t, []string{"101"}, rows[2], "NaN cells stay blank")
	assert.Equal(t, []string{"102", "1"}, rows[3])

	windows, err := file.GetRows("Windows")
	require.NoError(t, err)
	require.Len(t, windows, 3)
	assert.Equal(t, []string{"rule", "prediction_index", "status", "allocation", "volatility", "model_error"}, windows[0])
	assert.Equal(t, "level_relationship", windows[1][0])
	assert.Equal(t, "6", windows[1][1])
	assert.Equal(t, "fitted", windows[1][2])
	assert.Equal(t, "degenerate", windows[2][2])
}

func TestWriteXLSX_NoWindows(t *testing.T) {
	f := frame.New(1)
	require.NoError(t, f.SetColumn(frame.ColAllocation, []float64{0.5}))

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, WriteXLSX(path, "fifty_fifty", f, nil))

	file, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer file.Close()

	_, err = file.GetRows("Windows")
	assert.Error(t, err, "no windows sheet without a walk-forward result")
}
