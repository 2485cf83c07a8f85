package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/derive"
)

// GenerateCustomer builds the customer table: SF x 150,000 rows.
func GenerateCustomer(ctx *column.Context, p Params) (_ *Table, err error) {
	rows, err := p.Rows(TableCustomer)
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

	custkey, err := column.PrimaryKey(ctx, 1, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, custkey)

	name, err := derive.PaddedLabel(ctx, "Customer#", custkey, 9)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, name)

	address, err := column.RandomString(ctx, 10, 40, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, address)

	nationkey, err := column.RandomInt(ctx, 0, nationRows-1, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, nationkey)

	phone, err := phoneColumn(ctx, nationkey, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, phone)

	acctbal, err := column.RandomDecimal(ctx, -999.99, 9999.99, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, acctbal)

	segment, err := column.RandomChoice(ctx, marketSegments, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, segment)

	comment, err := column.RandomString(ctx, 29, 116, n)
	if err != nil {
		return nil, fmt.Errorf("customer: %w", err)
	}
	cols = append(cols, comment)

	fields := []arrow.Field{
		field("c_custkey", typeInt64),
		field("c_name", typeString),
		field("c_address", typeString),
		field("c_nationkey", typeInt64),
		field("c_phone", typeString),
		field("c_acctbal", typeFloat64),
		field("c_mktsegment", typeString),
		field("c_comment", typeString),
	}
	out := cols
	cols = nil
	return newTable(TableCustomer, fields, out, rows)
}
