// Package derive holds the business-rule formulas of the schema as pure
// column-in/column-out functions. Every function here is referentially
// transparent: no randomness, identical inputs give identical outputs.
package derive

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// RetailPrice computes p_retailprice from the part key:
// (90000 + ((pk/10) mod 20001) + 100*(pk mod 1000)) / 100.
// Because the price is a pure function of the key, lineitem pricing can be
// recomputed from l_partkey alone without carrying the part table around.
func RetailPrice(ctx *column.Context, partkey *array.Int64) (*array.Float64, error) {
	b := array.NewFloat64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(partkey.Len())
	for i := 0; i < partkey.Len(); i++ {
		pk := partkey.Value(i)
		cents := 90000 + (pk/10)%20001 + 100*(pk%1000)
		b.Append(float64(cents) / 100)
	}
	return b.NewFloat64Array(), nil
}

// ExtendedPrice computes quantity * price * (1 - discount) * (1 + tax) per
// row, rounded to cents. All inputs must have equal length.
func ExtendedPrice(ctx *column.Context, quantity *array.Int64, price, discount, tax *array.Float64) (*array.Float64, error) {
	n := quantity.Len()
	if price.Len() != n || discount.Len() != n || tax.Len() != n {
		return nil, fmt.Errorf("%w: extended price input lengths %d/%d/%d/%d",
			domain.ErrGeneration, n, price.Len(), discount.Len(), tax.Len())
	}
	b := array.NewFloat64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		v := float64(quantity.Value(i)) * price.Value(i) * (1 - discount.Value(i)) * (1 + tax.Value(i))
		b.Append(math.Round(v*100) / 100)
	}
	return b.NewFloat64Array(), nil
}

// TotalPrice sums the extended prices of each order's lines. counts holds
// the per-order line counts; the line rows must be grouped by order in the
// same sequence.
func TotalPrice(ctx *column.Context, counts *array.Int64, extended *array.Float64) (*array.Float64, error) {
	b := array.NewFloat64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(counts.Len())
	pos := 0
	for i := 0; i < counts.Len(); i++ {
		sum := 0.0
		for j := int64(0); j < counts.Value(i); j++ {
			if pos >= extended.Len() {
				return nil, fmt.Errorf("%w: total price ran past %d line rows", domain.ErrGeneration, extended.Len())
			}
			sum += extended.Value(pos)
			pos++
		}
		b.Append(math.Round(sum*100) / 100)
	}
	if pos != extended.Len() {
		return nil, fmt.Errorf("%w: total price consumed %d of %d line rows", domain.ErrGeneration, pos, extended.Len())
	}
	return b.NewFloat64Array(), nil
}
