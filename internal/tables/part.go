package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/derive"
)

// GeneratePart builds the part table: SF x 200,000 rows.
func GeneratePart(ctx *column.Context, p Params) (_ *Table, err error) {
	rows, err := p.Rows(TablePart)
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
	keep := func(a arrow.Array) { cols = append(cols, a) }

	partkey, err := column.PrimaryKey(ctx, 1, n)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(partkey)

	name, err := partName(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(name)

	mfgrID, err := column.RandomInt(ctx, 1, 5, n)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	defer mfgrID.Release()

	mfgr, err := derive.PaddedLabel(ctx, "Manufacturer#", mfgrID, 0)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(mfgr)

	variant, err := column.RandomInt(ctx, 1, 5, n)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	defer variant.Release()

	// p_brand shares its first digit with p_mfgr.
	brand, err := derive.Brand(ctx, mfgrID, variant)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(brand)

	typ, err := chooseAndJoin(ctx, n, " ", typeSyllable1, typeSyllable2, typeSyllable3)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(typ)

	size, err := column.RandomInt(ctx, 1, 50, n)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(size)

	container, err := chooseAndJoin(ctx, n, " ", containerSizes, containerShapes)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(container)

	retail, err := derive.RetailPrice(ctx, partkey)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(retail)

	comment, err := column.RandomString(ctx, 5, 22, n)
	if err != nil {
		return nil, fmt.Errorf("part: %w", err)
	}
	keep(comment)

	fields := []arrow.Field{
		field("p_partkey", typeInt64),
		field("p_name", typeString),
		field("p_mfgr", typeString),
		field("p_brand", typeString),
		field("p_type", typeString),
		field("p_size", typeInt64),
		field("p_container", typeString),
		field("p_retailprice", typeFloat64),
		field("p_comment", typeString),
	}
	out := cols
	cols = nil // newTable owns them from here
	return newTable(TablePart, fields, out, rows)
}

// partName draws five vocabulary words per row and joins them.
func partName(ctx *column.Context, n int) (*array.String, error) {
	return chooseAndJoin(ctx, n, " ",
		partNameWords, partNameWords, partNameWords, partNameWords, partNameWords)
}

// chooseAndJoin draws one uniform choice column per candidate set and joins
// the rows with sep.
func chooseAndJoin(ctx *column.Context, n int, sep string, sets ...[]string) (*array.String, error) {
	parts := make([]*array.String, 0, len(sets))
	defer func() {
		for _, p := range parts {
			p.Release()
		}
	}()
	for _, set := range sets {
		drawn, err := column.RandomChoice(ctx, set, n)
		if err != nil {
			return nil, err
		}
		parts = append(parts, drawn)
	}
	return derive.Concat(ctx, sep, parts...)
}
