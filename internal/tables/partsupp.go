package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// GeneratePartSupp builds the partsupp table: exactly four rows per part,
// each with a distinct supplier.
func GeneratePartSupp(ctx *column.Context, p Params) (_ *Table, err error) {
	parts, err := p.Rows(TablePart)
	if err != nil {
		return nil, err
	}
	suppliers, err := p.Rows(TableSupplier)
	if err != nil {
		return nil, err
	}
	if suppliers < partSuppFanOut {
		return nil, fmt.Errorf("%w: %d suppliers cannot cover %d distinct assignments per part",
			domain.ErrConfiguration, suppliers, partSuppFanOut)
	}
	rows := parts * partSuppFanOut
	n := int(rows)

	var cols []arrow.Array
	defer func() {
		if err != nil {
			releaseAll(cols...)
		}
	}()

	partkeys, err := column.PrimaryKey(ctx, 1, int(parts))
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	defer partkeys.Release()

	// Each part key appears four times in a row.
	repeatIdx := make([]int, n)
	for i := range repeatIdx {
		repeatIdx[i] = i / partSuppFanOut
	}
	partkey, err := gatherInt64(ctx, partkeys, repeatIdx)
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	cols = append(cols, partkey)

	slot, err := column.RepeatSequence(ctx, partSuppFanOut, true, n)
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	defer slot.Release()

	suppkey, err := supplierAssignment(ctx, partkey, slot, suppliers)
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	cols = append(cols, suppkey)

	availqty, err := column.RandomInt(ctx, 1, 9_999, n)
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	cols = append(cols, availqty)

	supplycost, err := column.RandomDecimal(ctx, 1.00, 1_000.00, n)
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	cols = append(cols, supplycost)

	comment, err := column.RandomString(ctx, 49, 198, n)
	if err != nil {
		return nil, fmt.Errorf("partsupp: %w", err)
	}
	cols = append(cols, comment)

	fields := []arrow.Field{
		field("ps_partkey", typeInt64),
		field("ps_suppkey", typeInt64),
		field("ps_availqty", typeInt64),
		field("ps_supplycost", typeFloat64),
		field("ps_comment", typeString),
	}
	out := cols
	cols = nil
	return newTable(TablePartSupp, fields, out, rows)
}

// supplierAssignment spreads each part's four rows over the supplier range
// using the round-robin stride (pk + slot*(S/4 + (pk-1)/S)) mod S + 1, which
// keeps the four suppliers of a part distinct and references suppliers
// roughly uniformly overall.
func supplierAssignment(ctx *column.Context, partkey, slot *array.Int64, numSuppliers int64) (*array.Int64, error) {
	if partkey.Len() != slot.Len() {
		return nil, fmt.Errorf("%w: supplier assignment input lengths %d/%d",
			domain.ErrGeneration, partkey.Len(), slot.Len())
	}
	s := numSuppliers
	b := array.NewInt64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(partkey.Len())
	for i := 0; i < partkey.Len(); i++ {
		pk := partkey.Value(i)
		stride := s/partSuppFanOut + (pk-1)/s
		// A stride whose small multiples hit 0 mod S would fold two slots
		// onto the same supplier; step to the next stride that cannot.
		for d := int64(1); d < partSuppFanOut; d++ {
			if d*stride%s == 0 {
				stride++
				d = 0
			}
		}
		b.Append((pk+slot.Value(i)*stride)%s + 1)
	}
	return b.NewInt64Array(), nil
}
