package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/mlinder10/litedb/engine"
)

// DB is a handle to a single file-backed (or in-memory) SQLite database.
// It wraps exactly one underlying engine connection; callers that share a DB
// across goroutines must serialize access themselves, the handle provides no
// internal locking.
//
// Execute and Query are the only two primitive entry points; every other
// operation (inserts, typed queries, transactions) composes them.
type DB struct {
	sdb   *sql.DB
	width IntWidth
}

type config struct {
	width      IntWidth
	engineOpts []engine.Option
}

// Option configures a DB during Open.
type Option func(*config)

// WithForeignKeys enables foreign-key constraint enforcement.
func WithForeignKeys() Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, engine.WithForeignKeys()) }
}

// WithBusyTimeout sets how long the engine waits on a locked database before
// failing.
func WithBusyTimeout(d time.Duration) Option {
	return func(c *config) { c.engineOpts = append(c.engineOpts, engine.WithBusyTimeout(d)) }
}

// WithIntWidth selects the width integer arguments are bound at. The default
// is BindInt64.
func WithIntWidth(w IntWidth) Option {
	return func(c *config) { c.width = w }
}

// Open opens or creates the database at path. Pass ":memory:" for an
// in-memory database. Failures are reported as *ConnectError.
func Open(path string, opts ...Option) (*DB, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	sdb, err := engine.Open(path, cfg.engineOpts...)
	if err != nil {
		return nil, &ConnectError{Path: path, Err: err}
	}
	return &DB{sdb: sdb, width: cfg.width}, nil
}

// Close releases the underlying connection. The DB is unusable afterwards;
// further calls fail with ErrClosed. Closing twice returns ErrClosed.
func (d *DB) Close() error {
	if d.closed() {
		return ErrClosed
	}
	err := d.sdb.Close()
	d.sdb = nil
	return err
}

func (d *DB) closed() bool { return d == nil || d.sdb == nil }

// Execute runs a statement that does not return rows (INSERT, UPDATE,
// DELETE, DDL). The integer result depends on the statement kind: INSERT
// reports the new row's id, UPDATE and DELETE report the affected-row count
// with a floor of one, everything else reports one.
func (d *DB) Execute(ctx context.Context, query string, args ...Argument) (int64, error) {
	if d.closed() {
		return 0, ErrClosed
	}
	stmt, vals, err := d.prepare(ctx, query, args)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx, vals...)
	if err != nil {
		return 0, &ExecError{SQL: query, Err: err}
	}
	return classify(query, res)
}

// Query runs a statement that returns rows and materializes the full result.
// The returned slice is never nil; a query matching nothing yields an empty
// slice. NULL cells are omitted from their row's mapping.
func (d *DB) Query(ctx context.Context, query string, args ...Argument) ([]Row, error) {
	if d.closed() {
		return nil, ErrClosed
	}
	stmt, vals, err := d.prepare(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, vals...)
	if err != nil {
		return nil, &ExecError{SQL: query, Err: err}
	}
	return materialize(query, rows)
}
