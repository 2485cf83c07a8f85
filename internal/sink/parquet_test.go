package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
	"github.com/mmrzaf/tpchgen/internal/tables"
)

func smallRegion(t *testing.T) *tables.Table {
	t.Helper()
	ctx := column.NewContext(memory.NewGoAllocator(), 1)
	p := tables.NewParams(&domain.Profile{ScaleFactor: 1})
	tbl, err := tables.GenerateRegion(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestParquetWriteRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	mem := memory.NewGoAllocator()

	tbl := smallRegion(t)
	defer tbl.Release()

	s := NewParquet(dir, mem)
	if err := s.Write(tbl); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "region.parquet")
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer rdr.Close()

	arrowRdr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		t.Fatal(err)
	}
	read, err := arrowRdr.ReadTable(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer read.Release()

	if read.NumRows() != 5 {
		t.Fatalf("expected 5 rows back, got %d", read.NumRows())
	}
	if read.NumCols() != 3 {
		t.Fatalf("expected 3 columns back, got %d", read.NumCols())
	}
	for i, want := range []string{"r_regionkey", "r_name", "r_comment"} {
		if got := read.Schema().Field(i).Name; got != want {
			t.Fatalf("column %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestParquetCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	tbl := smallRegion(t)
	defer tbl.Release()

	s := NewParquet(dir, memory.NewGoAllocator())
	if err := s.Write(tbl); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "region.parquet")); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestDiscardCounts(t *testing.T) {
	tbl := smallRegion(t)
	defer tbl.Release()

	d := &Discard{}
	if err := d.Write(tbl); err != nil {
		t.Fatal(err)
	}
	if d.Tables != 1 || d.Rows != 5 {
		t.Fatalf("expected 1 table / 5 rows counted, got %d / %d", d.Tables, d.Rows)
	}
}
