package derive

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// PaddedLabel formats each key as prefix plus the key zero-padded to width
// digits, e.g. "Supplier#000000042". A width of 0 skips padding.
func PaddedLabel(ctx *column.Context, prefix string, keys *array.Int64, width int) (*array.String, error) {
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(keys.Len())
	for i := 0; i < keys.Len(); i++ {
		if width > 0 {
			b.Append(fmt.Sprintf("%s%0*d", prefix, width, keys.Value(i)))
		} else {
			b.Append(fmt.Sprintf("%s%d", prefix, keys.Value(i)))
		}
	}
	return b.NewStringArray(), nil
}

// Concat joins the corresponding rows of the given columns with sep.
func Concat(ctx *column.Context, sep string, parts ...*array.String) (*array.String, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: concat needs at least one column", domain.ErrGeneration)
	}
	n := parts[0].Len()
	for _, p := range parts[1:] {
		if p.Len() != n {
			return nil, fmt.Errorf("%w: concat input lengths %d/%d", domain.ErrGeneration, n, p.Len())
		}
	}
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	row := make([]string, len(parts))
	for i := 0; i < n; i++ {
		for j, p := range parts {
			row[j] = p.Value(i)
		}
		b.Append(strings.Join(row, sep))
	}
	return b.NewStringArray(), nil
}

// PhoneNumbers builds phone numbers of the form CC-ddd-ddd-dddd where the
// country code is nationkey + 10 and the remaining groups are the given
// already-drawn digit columns.
func PhoneNumbers(ctx *column.Context, nationkey, local1, local2, local3 *array.Int64) (*array.String, error) {
	n := nationkey.Len()
	if local1.Len() != n || local2.Len() != n || local3.Len() != n {
		return nil, fmt.Errorf("%w: phone input lengths %d/%d/%d/%d",
			domain.ErrGeneration, n, local1.Len(), local2.Len(), local3.Len())
	}
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.Append(fmt.Sprintf("%02d-%03d-%03d-%04d",
			nationkey.Value(i)+10, local1.Value(i), local2.Value(i), local3.Value(i)))
	}
	return b.NewStringArray(), nil
}

// Brand builds "Brand#MN" labels from a manufacturer digit and a variant
// digit, keeping p_brand consistent with p_mfgr for the same row.
func Brand(ctx *column.Context, mfgr, variant *array.Int64) (*array.String, error) {
	if mfgr.Len() != variant.Len() {
		return nil, fmt.Errorf("%w: brand input lengths %d/%d", domain.ErrGeneration, mfgr.Len(), variant.Len())
	}
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(mfgr.Len())
	for i := 0; i < mfgr.Len(); i++ {
		b.Append(fmt.Sprintf("Brand#%d%d", mfgr.Value(i), variant.Value(i)))
	}
	return b.NewStringArray(), nil
}
