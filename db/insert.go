package db

import (
	"context"
	"strings"
)

// Column is one (column name, bound value) pair exposed by an Insertable.
type Column struct {
	Name  string
	Value Argument
}

// Insertable is implemented by values that can be stored with Insert and
// InsertAll. Columns returns the value's (name, value) pairs in the order
// the generated column list should use. For a batch insert every element
// must expose the same names in the same order; the column list is taken
// from the first element and the rest are not checked.
type Insertable interface {
	Table() string
	Columns() []Column
}

// Insert stores a single value and returns the inserted row's id.
func (d *DB) Insert(ctx context.Context, v Insertable) (int64, error) {
	query, args := insertStatement(v)
	return d.Execute(ctx, query, args...)
}

// InsertAll stores the given values with a single multi-row INSERT and
// returns the Execute result for it. An empty batch is a no-op: no SQL is
// issued and the result is zero.
func (d *DB) InsertAll(ctx context.Context, vs ...Insertable) (int64, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	query, args := batchInsertStatement(vs)
	return d.Execute(ctx, query, args...)
}

func insertStatement(v Insertable) (string, []Argument) {
	cols := v.Columns()
	names := make([]string, len(cols))
	args := make([]Argument, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		args[i] = c.Value
	}
	return insertSQL(v.Table(), names, 1), args
}

func batchInsertStatement(vs []Insertable) (string, []Argument) {
	first := vs[0].Columns()
	names := make([]string, len(first))
	for i, c := range first {
		names[i] = c.Name
	}
	args := make([]Argument, 0, len(vs)*len(first))
	for _, v := range vs {
		for _, c := range v.Columns() {
			args = append(args, c.Value)
		}
	}
	return insertSQL(vs[0].Table(), names, len(vs)), args
}

// insertSQL builds INSERT INTO table (cols...) VALUES with one placeholder
// tuple per row.
func insertSQL(table string, names []string, rows int) string {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(names)), ", ") + ")"
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString(") VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tuple)
	}
	return b.String()
}
