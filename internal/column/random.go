package column

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomInt returns n values uniformly distributed over [lower, upper],
// bounds inclusive.
func RandomInt(ctx *Context, lower, upper int64, n int) (*array.Int64, error) {
	if lower > upper {
		return nil, fmt.Errorf("%w: random int lower %d > upper %d", domain.ErrGeneration, lower, upper)
	}
	b := array.NewInt64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	span := upper - lower + 1
	for i := 0; i < n; i++ {
		b.Append(lower + ctx.Rng.Int63n(span))
	}
	return b.NewInt64Array(), nil
}

// RandomFloat returns n values uniformly distributed over [lower, upper].
func RandomFloat(ctx *Context, lower, upper float64, n int) (*array.Float64, error) {
	if lower > upper {
		return nil, fmt.Errorf("%w: random float lower %v > upper %v", domain.ErrGeneration, lower, upper)
	}
	b := array.NewFloat64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.Append(lower + ctx.Rng.Float64()*(upper-lower))
	}
	return b.NewFloat64Array(), nil
}

// RandomDecimal is RandomFloat with the result rounded to two fractional
// digits, matching the fixed-point money columns of the schema.
func RandomDecimal(ctx *Context, lower, upper float64, n int) (*array.Float64, error) {
	if lower > upper {
		return nil, fmt.Errorf("%w: random decimal lower %v > upper %v", domain.ErrGeneration, lower, upper)
	}
	b := array.NewFloat64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		v := lower + ctx.Rng.Float64()*(upper-lower)
		b.Append(math.Round(v*100) / 100)
	}
	return b.NewFloat64Array(), nil
}

// RandomString returns n strings whose lengths are uniform in
// [minLen, maxLen] and whose characters are drawn uniformly from an
// alphanumeric alphabet. Lengths are drawn first and summed into offsets,
// then one flat character buffer is filled and sliced per row, so the whole
// column is produced in a bounded number of bulk passes.
func RandomString(ctx *Context, minLen, maxLen, n int) (*array.String, error) {
	if minLen < 0 || minLen > maxLen {
		return nil, fmt.Errorf("%w: random string bounds [%d,%d]", domain.ErrGeneration, minLen, maxLen)
	}
	offsets := make([]int, n+1)
	span := maxLen - minLen + 1
	for i := 0; i < n; i++ {
		offsets[i+1] = offsets[i] + minLen + ctx.Rng.Intn(span)
	}
	chars := make([]byte, offsets[n])
	for i := range chars {
		chars[i] = alphanumeric[ctx.Rng.Intn(len(alphanumeric))]
	}

	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.Append(string(chars[offsets[i]:offsets[i+1]]))
	}
	return b.NewStringArray(), nil
}

// RandomChoice returns n values selected independently and uniformly, with
// replacement, from a fixed candidate set.
func RandomChoice(ctx *Context, candidates []string, n int) (*array.String, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: random choice needs a non-empty candidate set", domain.ErrGeneration)
	}
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	for i := 0; i < n; i++ {
		b.Append(candidates[ctx.Rng.Intn(len(candidates))])
	}
	return b.NewStringArray(), nil
}

// RandomDate returns n dates uniformly distributed over [lo, hi], bounds
// inclusive, as days since the UNIX epoch.
func RandomDate(ctx *Context, lo, hi arrow.Date32, n int) (*array.Date32, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: random date lower %d > upper %d", domain.ErrGeneration, lo, hi)
	}
	b := array.NewDate32Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(n)
	span := int64(hi) - int64(lo) + 1
	for i := 0; i < n; i++ {
		b.Append(lo + arrow.Date32(ctx.Rng.Int63n(span)))
	}
	return b.NewDate32Array(), nil
}
