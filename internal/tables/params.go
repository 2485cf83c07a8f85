package tables

import (
	"fmt"
	"math"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

// Params carries everything a table generator needs to size its output.
type Params struct {
	ScaleFactor  float64
	RowOverrides map[string]int64
	LineCountMin int64
	LineCountMax int64
}

// NewParams resolves a profile into generation parameters, filling in the
// default lineitem fan-out when the profile leaves it unset.
func NewParams(p *domain.Profile) Params {
	params := Params{
		ScaleFactor:  p.ScaleFactor,
		RowOverrides: p.RowOverrides,
		LineCountMin: defaultLineMin,
		LineCountMax: defaultLineMax,
	}
	if p.LineCount != nil {
		params.LineCountMin = p.LineCount.Min
		params.LineCountMax = p.LineCount.Max
	}
	return params
}

// FixedRows returns the fixed row count for nation/region, or 0 when the
// table scales with the scale factor.
func FixedRows(table string) int64 {
	switch table {
	case TableNation:
		return nationRows
	case TableRegion:
		return regionRows
	default:
		return 0
	}
}

// Rows computes the row count for one table: base multiplier times scale
// factor, rounded, unless overridden. partsupp and lineitem have no count of
// their own; they derive from part rows and from the per-order draws.
func (p Params) Rows(table string) (int64, error) {
	if p.ScaleFactor <= 0 || math.IsNaN(p.ScaleFactor) || math.IsInf(p.ScaleFactor, 0) {
		return 0, fmt.Errorf("%w: scale factor %v", domain.ErrConfiguration, p.ScaleFactor)
	}

	if n, ok := p.RowOverrides[table]; ok {
		if fixed := FixedRows(table); fixed > 0 && n != fixed {
			return 0, fmt.Errorf("%w: table %s has a fixed size of %d rows, override is %d",
				domain.ErrConfiguration, table, fixed, n)
		}
		if n < 0 {
			return 0, fmt.Errorf("%w: table %s row override %d", domain.ErrConfiguration, table, n)
		}
		return n, nil
	}

	switch table {
	case TablePart:
		return scaled(p.ScaleFactor, partBase), nil
	case TableSupplier:
		return scaled(p.ScaleFactor, supplierBase), nil
	case TableCustomer:
		return scaled(p.ScaleFactor, customerBase), nil
	case TableOrders:
		return scaled(p.ScaleFactor, ordersBase), nil
	case TableNation:
		return nationRows, nil
	case TableRegion:
		return regionRows, nil
	case TablePartSupp:
		parts, err := p.Rows(TablePart)
		if err != nil {
			return 0, err
		}
		return parts * partSuppFanOut, nil
	default:
		return 0, fmt.Errorf("%w: unknown table %q", domain.ErrConfiguration, table)
	}
}

// Clerks returns the size of the clerk pool referenced by o_clerk.
func (p Params) Clerks() int64 {
	n := scaled(p.ScaleFactor, clerksPerSF)
	if n < 1 {
		return 1
	}
	return n
}

func scaled(sf float64, base int64) int64 {
	return int64(math.Round(sf * float64(base)))
}
