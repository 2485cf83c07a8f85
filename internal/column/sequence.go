package column

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

// PrimaryKey returns the dense sequence start, start+1, ..., start+n-1.
// Uniqueness and contiguity hold by construction. A sequence that would
// exceed the int64 range fails instead of wrapping.
func PrimaryKey(ctx *Context, start int64, n int) (*array.Int64, error) {
	if n > 0 && start > math.MaxInt64-int64(n)+1 {
		return nil, fmt.Errorf("%w: primary key overflow: start %d length %d", domain.ErrGeneration, start, n)
	}
	b := array.NewInt64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.Append(start + int64(i))
	}
	return b.NewInt64Array(), nil
}

// RepeatValue returns n copies of one string.
func RepeatValue(ctx *Context, value string, n int) (*array.String, error) {
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.Append(value)
	}
	return b.NewStringArray(), nil
}

// RepeatSequence returns the pattern 0,1,...,modulus-1 (or 1,...,modulus when
// zeroIndexed is false) cycling until n rows are filled. Used for round-robin
// assignment such as the four suppliers per part.
func RepeatSequence(ctx *Context, modulus int64, zeroIndexed bool, n int) (*array.Int64, error) {
	if modulus < 1 {
		return nil, fmt.Errorf("%w: repeat sequence modulus %d", domain.ErrGeneration, modulus)
	}
	b := array.NewInt64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	offset := int64(1)
	if zeroIndexed {
		offset = 0
	}
	for i := 0; i < n; i++ {
		b.Append(int64(i)%modulus + offset)
	}
	return b.NewInt64Array(), nil
}
