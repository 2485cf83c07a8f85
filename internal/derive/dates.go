package derive

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// OffsetDays shifts each base date by the corresponding offset in days.
// Used to place ship, commit, and receipt dates relative to the order date.
func OffsetDays(ctx *column.Context, base *array.Date32, offsets *array.Int64) (*array.Date32, error) {
	if base.Len() != offsets.Len() {
		return nil, fmt.Errorf("%w: offset days input lengths %d/%d", domain.ErrGeneration, base.Len(), offsets.Len())
	}
	b := array.NewDate32Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(base.Len())
	for i := 0; i < base.Len(); i++ {
		b.Append(base.Value(i) + arrow.Date32(offsets.Value(i)))
	}
	return b.NewDate32Array(), nil
}
