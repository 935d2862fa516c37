package frame

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
)

// FromCSV loads a frame from a headered CSV file. Every column is parsed
// as float64; empty cells become NaN. Files without a mid column get one
// copied from price, so plain OHLC exports work unchanged.
func FromCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("csv %s has no header row", path)
	}

	header := records[0]
	rows := records[1:]
	f := New(len(rows))

	for col, name := range header {
		values := make([]float64, len(rows))
		for i, row := range rows {
			if col >= len(row) || row[col] == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("csv %s row %d column %q: %w", path, i+2, name, err)
			}
			values[i] = v
		}
		if err := f.SetColumn(name, values); err != nil {
			return nil, err
		}
	}

	if !f.Has(ColMid) && f.Has(ColPrice) {
		price, _ := f.Column(ColPrice)
		mid := make([]float64, len(price))
		copy(mid, price)
		if err := f.SetColumn(ColMid, mid); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// WriteCSV writes all columns in insertion order with a header row.
func (f *Frame) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(f.order); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	row := make([]string, len(f.order))
	for i := 0; i < f.n; i++ {
		for j, name := range f.order {
			v := f.cols[name][i]
			if math.IsNaN(v) {
				row[j] = ""
				continue
			}
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
