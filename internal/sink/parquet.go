// Package sink persists finished tables. The generation core only depends on
// the exec.Sink interface; everything format-specific lives here.
package sink

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/mmrzaf/tpchgen/internal/tables"
)

// Parquet writes each table to <dir>/<table>.parquet.
type Parquet struct {
	dir string
	mem memory.Allocator
}

func NewParquet(dir string, mem memory.Allocator) *Parquet {
	return &Parquet{dir: dir, mem: mem}
}

func (s *Parquet) Write(t *tables.Table) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(s.dir, t.Name+".parquet")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w, err := pqarrow.NewFileWriter(t.Record.Schema(), f, nil,
		pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(s.mem)))
	if err != nil {
		return fmt.Errorf("parquet writer for %s: %w", path, err)
	}
	if err := w.Write(t.Record); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return w.Close()
}
