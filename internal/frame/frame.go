// Package frame holds the column-oriented table that allocation rules
// read from and write to. A frame is a set of equal-length float64
// columns addressed by name; row order is significant and never changed.
package frame

import (
	"fmt"
)

// Canonical column names shared across rules.
const (
	ColPrice      = "price"
	ColMid        = "mid"
	ColHigh       = "high"
	ColLow        = "low"
	ColResearch   = "research"
	ColResearch1  = "research_1"
	ColSignal     = "signal"
	ColAllocation = "allocation"
)

// Frame is an ordered table of float64 columns sharing one length.
// Rules read input columns and write the allocation column in place;
// Column returns the live backing slice for exactly that reason.
type Frame struct {
	n     int
	order []string
	cols  map[string][]float64
}

// New creates an empty frame with n rows.
func New(n int) *Frame {
	return &Frame{
		n:    n,
		cols: make(map[string][]float64),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.n
}

// Has reports whether the named column exists.
func (f *Frame) Has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Column returns the backing slice of the named column.
func (f *Frame) Column(name string) ([]float64, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("frame has no column %q", name)
	}
	return col, nil
}

// SetColumn stores values under name, taking ownership of the slice.
// An existing column of the same name is replaced in place.
func (f *Frame) SetColumn(name string, values []float64) error {
	if len(values) != f.n {
		return fmt.Errorf("column %q has %d values, frame has %d rows", name, len(values), f.n)
	}
	if _, ok := f.cols[name]; !ok {
		f.order = append(f.order, name)
	}
	f.cols[name] = values
	return nil
}

// SetConst fills the named column with a single value, creating it if needed.
func (f *Frame) SetConst(name string, value float64) {
	values := make([]float64, f.n)
	for i := range values {
		values[i] = value
	}
	// Length always matches, SetColumn cannot fail here.
	_ = f.SetColumn(name, values)
}

// Require verifies that all named columns are present.
func (f *Frame) Require(names ...string) error {
	for _, name := range names {
		if !f.Has(name) {
			return fmt.Errorf("frame has no column %q", name)
		}
	}
	return nil
}
