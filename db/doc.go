// Package db is a lightweight access layer over an embedded SQLite database.
// It includes:
//   - DB: a single-connection database handle with Execute/Query primitives
//   - Argument: the closed set of bindable parameter values
//   - Row: dynamically-typed decoded result rows with typed accessors
//   - Insertable/RowScanner: per-type declared mappings for struct-to-row
//     insert and row-to-struct decode
//   - Tx: an ordered multi-statement transaction with rollback-on-error
//
// All SQL is written literally by the caller; the package binds parameters,
// coerces column values, and sequences transactions, nothing more.
package db
