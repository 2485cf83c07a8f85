package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/derive"
)

// GenerateSupplier builds the supplier table: SF x 10,000 rows.
func GenerateSupplier(ctx *column.Context, p Params) (_ *Table, err error) {
	rows, err := p.Rows(TableSupplier)
	if err != nil {
		return nil, err
	}
	n := int(rows)

	var cols []arrow.Array
	defer func() {
		if err != nil {
			releaseAll(cols...)
		}
	}()

	suppkey, err := column.PrimaryKey(ctx, 1, n)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, suppkey)

	name, err := derive.PaddedLabel(ctx, "Supplier#", suppkey, 9)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, name)

	address, err := column.RandomString(ctx, 10, 40, n)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, address)

	nationkey, err := column.RandomInt(ctx, 0, nationRows-1, n)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, nationkey)

	phone, err := phoneColumn(ctx, nationkey, n)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, phone)

	acctbal, err := column.RandomDecimal(ctx, -999.99, 9999.99, n)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, acctbal)

	comment, err := column.RandomString(ctx, 25, 100, n)
	if err != nil {
		return nil, fmt.Errorf("supplier: %w", err)
	}
	cols = append(cols, comment)

	fields := []arrow.Field{
		field("s_suppkey", typeInt64),
		field("s_name", typeString),
		field("s_address", typeString),
		field("s_nationkey", typeInt64),
		field("s_phone", typeString),
		field("s_acctbal", typeFloat64),
		field("s_comment", typeString),
	}
	out := cols
	cols = nil
	return newTable(TableSupplier, fields, out, rows)
}

// phoneColumn draws the three local digit groups and formats them together
// with the nation-derived country code.
func phoneColumn(ctx *column.Context, nationkey *array.Int64, n int) (*array.String, error) {
	local1, err := column.RandomInt(ctx, 100, 999, n)
	if err != nil {
		return nil, err
	}
	defer local1.Release()
	local2, err := column.RandomInt(ctx, 100, 999, n)
	if err != nil {
		return nil, err
	}
	defer local2.Release()
	local3, err := column.RandomInt(ctx, 1000, 9999, n)
	if err != nil {
		return nil, err
	}
	defer local3.Release()
	return derive.PhoneNumbers(ctx, nationkey, local1, local2, local3)
}
