package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/mmrzaf/tpchgen/internal/column"
)

// GenerateNation builds the fixed 25-row nation table with its fixed
// nation-to-region mapping.
func GenerateNation(ctx *column.Context, p Params) (_ *Table, err error) {
	rows, err := p.Rows(TableNation)
	if err != nil {
		return nil, err
	}

	var cols []arrow.Array
	defer func() {
		if err != nil {
			releaseAll(cols...)
		}
	}()

	nationkey, err := column.PrimaryKey(ctx, 0, int(rows))
	if err != nil {
		return nil, fmt.Errorf("nation: %w", err)
	}
	cols = append(cols, nationkey)

	names := make([]string, len(nationCatalog))
	regionkeys := make([]int64, len(nationCatalog))
	for i, nc := range nationCatalog {
		names[i] = nc.Name
		regionkeys[i] = nc.RegionKey
	}
	cols = append(cols, stringColumn(ctx, names))
	cols = append(cols, int64Column(ctx, regionkeys))

	comment, err := column.RandomString(ctx, 31, 114, int(rows))
	if err != nil {
		return nil, fmt.Errorf("nation: %w", err)
	}
	cols = append(cols, comment)

	fields := []arrow.Field{
		field("n_nationkey", typeInt64),
		field("n_name", typeString),
		field("n_regionkey", typeInt64),
		field("n_comment", typeString),
	}
	out := cols
	cols = nil
	return newTable(TableNation, fields, out, rows)
}
