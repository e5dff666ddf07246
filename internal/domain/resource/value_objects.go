package resource

import (
	"github.com/shopspring/decimal"

	"slot-reservation/internal/pkg/errs"
)

var ErrInvalidGeometry = errs.Define("rows, cols and total slots must be positive, within limits, and the grid must contain every slot", errs.ErrValidation)

const (
	defaultParkingRows = 3
	defaultParkingCols = 4
	defaultEVRows      = 2
	defaultEVCols      = 2

	DefaultOperatingHours = "24h"

	// MaxGridSide and MaxSlots bound the memory a single resource can claim
	// in either store.
	MaxGridSide = 1000
	MaxSlots    = 10000
)

// unit_price is stored as NUMERIC(12,2).
const unitPriceScale = 2

var (
	maxUnitPrice = decimal.New(1, 10)

	defaultParkingUnitPrice = decimal.NewFromInt(1000) // per hour
	defaultEVUnitPrice      = decimal.NewFromInt(200)  // per kWh
)

// Geometry bounds valid slot indexes to [0, total) and lays them out
// row-major over a rows x cols grid.
type Geometry struct {
	rows  int
	cols  int
	total int
}

func NewGeometry(rows, cols, total int) (Geometry, error) {
	// sides are checked first so rows*cols cannot overflow
	if rows <= 0 || cols <= 0 || rows > MaxGridSide || cols > MaxGridSide ||
		total <= 0 || total > MaxSlots || rows*cols < total {
		return Geometry{}, errs.Wrapf(ErrInvalidGeometry, "rows=%d cols=%d total=%d", rows, cols, total)
	}
	return Geometry{rows: rows, cols: cols, total: total}, nil
}

// DefaultGeometry fills zero values with the per-type defaults; total
// defaults to rows*cols.
func DefaultGeometry(t Type, rows, cols, total int) (Geometry, error) {
	if rows == 0 {
		rows = defaultRows(t)
	}
	if cols == 0 {
		cols = defaultCols(t)
	}
	if total == 0 {
		total = rows * cols
	}
	return NewGeometry(rows, cols, total)
}

func (g Geometry) Rows() int  { return g.rows }
func (g Geometry) Cols() int  { return g.cols }
func (g Geometry) Total() int { return g.total }

func (g Geometry) Contains(index int) bool {
	return index >= 0 && index < g.total
}

// Position returns the grid coordinates of index.
func (g Geometry) Position(index int) (row, col int) {
	return index / g.cols, index % g.cols
}

func DefaultUnitPrice(t Type) decimal.Decimal {
	if t == TypeEV {
		return defaultEVUnitPrice
	}
	return defaultParkingUnitPrice
}

func defaultRows(t Type) int {
	if t == TypeEV {
		return defaultEVRows
	}
	return defaultParkingRows
}

func defaultCols(t Type) int {
	if t == TypeEV {
		return defaultEVCols
	}
	return defaultParkingCols
}
