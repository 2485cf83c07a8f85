package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// explodeIndex turns a per-parent repeat-count column into a flat
// child-to-parent index plus a 1-based position counter within each parent.
// Row k of an exploded frame gathers parent columns through parents[k] and
// carries line number linenum[k].
func explodeIndex(counts *array.Int64) (parents []int, linenum []int64, err error) {
	total := int64(0)
	for i := 0; i < counts.Len(); i++ {
		c := counts.Value(i)
		if c < 0 {
			return nil, nil, fmt.Errorf("%w: negative repeat count %d at row %d", domain.ErrGeneration, c, i)
		}
		total += c
	}
	parents = make([]int, 0, total)
	linenum = make([]int64, 0, total)
	for i := 0; i < counts.Len(); i++ {
		for j := int64(1); j <= counts.Value(i); j++ {
			parents = append(parents, i)
			linenum = append(linenum, j)
		}
	}
	return parents, linenum, nil
}

// gatherInt64 selects src rows through the given index mapping.
func gatherInt64(ctx *column.Context, src *array.Int64, idx []int) (*array.Int64, error) {
	b := array.NewInt64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(len(idx))
	for _, i := range idx {
		if i < 0 || i >= src.Len() {
			return nil, fmt.Errorf("%w: gather index %d outside %d rows", domain.ErrGeneration, i, src.Len())
		}
		b.Append(src.Value(i))
	}
	return b.NewInt64Array(), nil
}

// gatherDate32 selects src rows through the given index mapping.
func gatherDate32(ctx *column.Context, src *array.Date32, idx []int) (*array.Date32, error) {
	b := array.NewDate32Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(len(idx))
	for _, i := range idx {
		if i < 0 || i >= src.Len() {
			return nil, fmt.Errorf("%w: gather index %d outside %d rows", domain.ErrGeneration, i, src.Len())
		}
		b.Append(src.Value(i))
	}
	return b.NewDate32Array(), nil
}
