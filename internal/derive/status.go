package derive

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// LineStatus classifies each line as still open ("O") when it ships after
// the dataset's current date, otherwise finished ("F").
func LineStatus(ctx *column.Context, shipDate *array.Date32, current arrow.Date32) (*array.String, error) {
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(shipDate.Len())
	for i := 0; i < shipDate.Len(); i++ {
		if shipDate.Value(i) > current {
			b.Append("O")
		} else {
			b.Append("F")
		}
	}
	return b.NewStringArray(), nil
}

// ReturnFlag is "N" for lines not yet received as of the current date;
// received lines take the already-drawn "R"/"A" value. The drawn column is
// an input, not hidden randomness, so the function stays deterministic.
func ReturnFlag(ctx *column.Context, receiptDate *array.Date32, drawn *array.String, current arrow.Date32) (*array.String, error) {
	if receiptDate.Len() != drawn.Len() {
		return nil, fmt.Errorf("%w: return flag input lengths %d/%d", domain.ErrGeneration, receiptDate.Len(), drawn.Len())
	}
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(receiptDate.Len())
	for i := 0; i < receiptDate.Len(); i++ {
		if receiptDate.Value(i) > current {
			b.Append("N")
		} else {
			b.Append(drawn.Value(i))
		}
	}
	return b.NewStringArray(), nil
}

// OrderStatus folds the statuses of each order's lines: "F" when every line
// is finished, "O" when every line is open, "P" otherwise. counts holds the
// per-order line counts; lineStatus rows are grouped by order.
func OrderStatus(ctx *column.Context, counts *array.Int64, lineStatus *array.String) (*array.String, error) {
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(counts.Len())
	pos := 0
	for i := 0; i < counts.Len(); i++ {
		open, finished := 0, 0
		for j := int64(0); j < counts.Value(i); j++ {
			if pos >= lineStatus.Len() {
				return nil, fmt.Errorf("%w: order status ran past %d line rows", domain.ErrGeneration, lineStatus.Len())
			}
			if lineStatus.Value(pos) == "O" {
				open++
			} else {
				finished++
			}
			pos++
		}
		switch {
		case finished == 0:
			b.Append("O")
		case open == 0:
			b.Append("F")
		default:
			b.Append("P")
		}
	}
	if pos != lineStatus.Len() {
		return nil, fmt.Errorf("%w: order status consumed %d of %d line rows", domain.ErrGeneration, pos, lineStatus.Len())
	}
	return b.NewStringArray(), nil
}
