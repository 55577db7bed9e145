package db

import (
	"context"
	"fmt"
)

// RowScanner is implemented by values that can reconstruct themselves from a
// decoded Row. ScanRow should read fields by column name via the Row
// accessors and return an error for anything it cannot accept; that error
// fails the whole decode call.
type RowScanner interface {
	ScanRow(r Row) error
}

// ColumnAliaser optionally remaps result column names to the names ScanRow
// expects. The map is keyed by column name; keys absent from it pass through
// unchanged. Renaming happens before ScanRow sees the row.
type ColumnAliaser interface {
	ColumnAliases() map[string]string
}

// Decodable constrains the target of QueryAs and GetAs: a pointer to T that
// implements RowScanner.
type Decodable[T any] interface {
	*T
	RowScanner
}

// QueryAs runs query and decodes every result row into a T. Decoding is
// all-or-nothing: if any row fails, the call fails with *DecodeError and no
// partial result.
func QueryAs[T any, P Decodable[T]](ctx context.Context, d *DB, query string, args ...Argument) ([]T, error) {
	rows, err := d.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return DecodeRows[T, P](rows)
}

// GetAs runs query and decodes the first result row into a T. It returns
// ErrNoRows when the query matches nothing.
func GetAs[T any, P Decodable[T]](ctx context.Context, d *DB, query string, args ...Argument) (T, error) {
	var zero T
	vs, err := QueryAs[T, P](ctx, d, query, args...)
	if err != nil {
		return zero, err
	}
	if len(vs) == 0 {
		return zero, ErrNoRows
	}
	return vs[0], nil
}

// DecodeRows decodes already-materialized rows into typed values.
func DecodeRows[T any, P Decodable[T]](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, r := range rows {
		p := P(new(T))
		if a, ok := any(p).(ColumnAliaser); ok {
			r = renameColumns(r, a.ColumnAliases())
		}
		if err := p.ScanRow(r); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("row %d: %w", i, err)}
		}
		out = append(out, *p)
	}
	return out, nil
}

func renameColumns(r Row, aliases map[string]string) Row {
	if len(aliases) == 0 {
		return r
	}
	out := make(Row, len(r))
	for k, v := range r {
		if alias, ok := aliases[k]; ok {
			k = alias
		}
		out[k] = v
	}
	return out
}
