// Package limits holds hard bounds for terminal dimensions so a bad resize
// event can never allocate an absurd grid.
package limits

import "fmt"

const (
	TermMaxCols = 500
	TermMaxRows = 200

	DefaultCols = 80
	DefaultRows = 24
)

type DimensionError struct {
	Cols, Rows       int
	MaxCols, MaxRows int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimensions %dx%d exceed max %dx%d", e.Cols, e.Rows, e.MaxCols, e.MaxRows)
}

// Normalize raises non-positive dimensions to the minimum of 1x1.
func Normalize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Clamp normalizes and caps dimensions to the supported maximum.
func Clamp(cols, rows int) (int, int) {
	cols, rows = Normalize(cols, rows)
	if cols > TermMaxCols {
		cols = TermMaxCols
	}
	if rows > TermMaxRows {
		rows = TermMaxRows
	}
	return cols, rows
}

// ValidateMax reports an error when dimensions exceed the supported maximum.
func ValidateMax(cols, rows int) error {
	cols, rows = Normalize(cols, rows)
	if cols > TermMaxCols || rows > TermMaxRows {
		return &DimensionError{Cols: cols, Rows: rows, MaxCols: TermMaxCols, MaxRows: TermMaxRows}
	}
	return nil
}
