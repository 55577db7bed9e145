package engine

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Options control how a database handle is opened.
type Options struct {
	// ForeignKeys enables foreign-key constraint enforcement on the
	// connection (SQLite ships with it off).
	ForeignKeys bool

	// BusyTimeout sets how long the engine retries when the database file is
	// locked by another connection before reporting SQLITE_BUSY.
	BusyTimeout time.Duration
}

// Option mutates Options during Open.
type Option func(*Options)

// WithForeignKeys turns on foreign-key constraint enforcement.
func WithForeignKeys() Option {
	return func(o *Options) { o.ForeignKeys = true }
}

// WithBusyTimeout sets the engine's busy timeout.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *Options) { o.BusyTimeout = d }
}

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:". The returned handle is pinned to a single
// underlying connection so that session state (pragmas, open transactions)
// is shared by every statement issued through it.
func Open(dsn string, opts ...Option) (*sql.DB, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// sql.Open is lazy; force the file open so callers see failures here.
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if o.ForeignKeys {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if o.BusyTimeout > 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", o.BusyTimeout.Milliseconds())); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}
