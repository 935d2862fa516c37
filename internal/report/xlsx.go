// Package report renders allocation runs as XLSX workbooks.
package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/allocrun/allocrun/internal/frame"
	"github.com/allocrun/allocrun/internal/levelrel"
)

const (
	sheetAllocations = "Allocations"
	sheetWindows     = "Windows"
)

// WriteXLSX writes the frame to an Allocations sheet and, when a
// walk-forward result is provided, a per-window summary sheet.
func WriteXLSX(path, rule string, f *frame.Frame, res *levelrel.Result) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetAllocations); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeFrameSheet(file, f); err != nil {
		return err
	}
	if res != nil {
		if err := writeWindowsSheet(file, rule, res); err != nil {
			return err
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}

func writeFrameSheet(file *excelize.File, f *frame.Frame) error {
	names := f.Columns()
	header := make([]any, len(names))
	for i, name := range names {
		header[i] = name
	}
	if err := file.SetSheetRow(sheetAllocations, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cols := make([][]float64, len(names))
	for i, name := range names {
		col, err := f.Column(name)
		if err != nil {
			return err
		}
		cols[i] = col
	}

	row := make([]any, len(names))
	for i := 0; i < f.Len(); i++ {
		for j := range cols {
			if math.IsNaN(cols[j][i]) {
				row[j] = nil
				continue
			}
			row[j] = cols[j][i]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := file.SetSheetRow(sheetAllocations, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return nil
}

func writeWindowsSheet(file *excelize.File, rule string, res *levelrel.Result) error {
	if _, err := file.NewSheet(sheetWindows); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	header := []any{"rule", "prediction_index", "status", "allocation", "volatility", "model_error"}
	if err := file.SetSheetRow(sheetWindows, "A1", &header); err != nil {
		return fmt.Errorf("write windows header: %w", err)
	}

	for i, w := range res.Windows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		row := []any{rule, w.PredictionIndex, string(w.Status), w.Allocation, w.Volatility, w.ModelError}
		if err := file.SetSheetRow(sheetWindows, cell, &row); err != nil {
			return fmt.Errorf("write windows row %d: %w", i, err)
		}
	}
	return nil
}
