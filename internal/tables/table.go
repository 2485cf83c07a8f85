// Package tables builds the eight benchmark tables by composing the column
// primitives with the derived-field formulas, enforcing each table's row
// count and cross-table key ranges.
package tables

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/mmrzaf/tpchgen/internal/column"
	"github.com/mmrzaf/tpchgen/internal/domain"
)

// Table is one finished benchmark table: a named, fixed-order set of
// equal-length columns. It owns its record until handed to a sink.
type Table struct {
	Name   string
	Record arrow.Record
}

// newTable validates column lengths against the declared row count, builds
// the record, and takes ownership of the passed arrays (the caller's
// references are released here).
func newTable(name string, fields []arrow.Field, cols []arrow.Array, rows int64) (*Table, error) {
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()
	if len(fields) != len(cols) {
		return nil, fmt.Errorf("%w: table %s has %d fields but %d columns", domain.ErrGeneration, name, len(fields), len(cols))
	}
	for i, c := range cols {
		if int64(c.Len()) != rows {
			return nil, fmt.Errorf("%w: table %s column %s has %d rows, want %d",
				domain.ErrGeneration, name, fields[i].Name, c.Len(), rows)
		}
	}
	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, cols, rows)
	return &Table{Name: name, Record: rec}, nil
}

func (t *Table) NumRows() int64 {
	return t.Record.NumRows()
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) arrow.Array {
	for i, f := range t.Record.Schema().Fields() {
		if f.Name == name {
			return t.Record.Column(i)
		}
	}
	return nil
}

func (t *Table) Release() {
	t.Record.Release()
}

// releaseAll is a cleanup helper for generator scratch columns.
func releaseAll(arrs ...arrow.Array) {
	for _, a := range arrs {
		if a != nil {
			a.Release()
		}
	}
}

// stringColumn materializes a fixed string slice as a column.
func stringColumn(ctx *column.Context, vals []string) *array.String {
	b := array.NewStringBuilder(ctx.Mem)
	defer b.Release()
	b.Reserve(len(vals))
	for _, v := range vals {
		b.Append(v)
	}
	return b.NewStringArray()
}

// int64Column materializes an int64 slice as a column.
func int64Column(ctx *column.Context, vals []int64) *array.Int64 {
	b := array.NewInt64Builder(ctx.Mem)
	defer b.Release()
	b.Reserve(len(vals))
	for _, v := range vals {
		b.Append(v)
	}
	return b.NewInt64Array()
}
