package column

import (
	"errors"
	"math"
	"testing"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

func TestPrimaryKeyDenseFromStart(t *testing.T) {
	ctx := testContext()
	col, err := PrimaryKey(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer col.Release()

	if col.Len() != 10 {
		t.Fatalf("expected 10 rows, got %d", col.Len())
	}
	for i := 0; i < col.Len(); i++ {
		if col.Value(i) != int64(i)+1 {
			t.Fatalf("row %d: expected %d, got %d", i, i+1, col.Value(i))
		}
	}
}

func TestPrimaryKeyEmpty(t *testing.T) {
	ctx := testContext()
	col, err := PrimaryKey(ctx, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer col.Release()
	if col.Len() != 0 {
		t.Fatalf("expected empty column, got %d rows", col.Len())
	}
}

func TestPrimaryKeyOverflow(t *testing.T) {
	ctx := testContext()
	if _, err := PrimaryKey(ctx, math.MaxInt64-1, 3); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
}

func TestRepeatValue(t *testing.T) {
	ctx := testContext()
	col, err := RepeatValue(ctx, "AMERICA", 5)
	if err != nil {
		t.Fatal(err)
	}
	defer col.Release()

	for i := 0; i < col.Len(); i++ {
		if col.Value(i) != "AMERICA" {
			t.Fatalf("row %d: got %q", i, col.Value(i))
		}
	}
}

func TestRepeatSequenceZeroIndexed(t *testing.T) {
	ctx := testContext()
	col, err := RepeatSequence(ctx, 4, true, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer col.Release()

	want := []int64{0, 1, 2, 3, 0, 1, 2, 3, 0, 1}
	for i, w := range want {
		if col.Value(i) != w {
			t.Fatalf("row %d: expected %d, got %d", i, w, col.Value(i))
		}
	}
}

func TestRepeatSequenceOneIndexed(t *testing.T) {
	ctx := testContext()
	col, err := RepeatSequence(ctx, 3, false, 7)
	if err != nil {
		t.Fatal(err)
	}
	defer col.Release()

	want := []int64{1, 2, 3, 1, 2, 3, 1}
	for i, w := range want {
		if col.Value(i) != w {
			t.Fatalf("row %d: expected %d, got %d", i, w, col.Value(i))
		}
	}
}

func TestRepeatSequenceRejectsBadModulus(t *testing.T) {
	ctx := testContext()
	if _, err := RepeatSequence(ctx, 0, true, 1); !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected generation error, got %v", err)
	}
}
