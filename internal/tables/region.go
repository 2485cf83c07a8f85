package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/mmrzaf/tpchgen/internal/column"
)

// GenerateRegion builds the fixed 5-row region table.
func GenerateRegion(ctx *column.Context, p Params) (_ *Table, err error) {
	rows, err := p.Rows(TableRegion)
	if err != nil {
		return nil, err
	}

	var cols []arrow.Array
	defer func() {
		if err != nil {
			releaseAll(cols...)
		}
	}()

	regionkey, err := column.PrimaryKey(ctx, 0, int(rows))
	if err != nil {
		return nil, fmt.Errorf("region: %w", err)
	}
	cols = append(cols, regionkey)

	cols = append(cols, stringColumn(ctx, regionNames))

	comment, err := column.RandomString(ctx, 31, 115, int(rows))
	if err != nil {
		return nil, fmt.Errorf("region: %w", err)
	}
	cols = append(cols, comment)

	fields := []arrow.Field{
		field("r_regionkey", typeInt64),
		field("r_name", typeString),
		field("r_comment", typeString),
	}
	out := cols
	cols = nil
	return newTable(TableRegion, fields, out, rows)
}
