package db

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when an operation is attempted on a DB that was
// never opened or has been closed.
var ErrClosed = errors.New("db: database is closed")

// ErrNoRows is returned by GetAs when the query matches no rows.
var ErrNoRows = errors.New("db: no rows in result set")

// ConnectError reports a failure to open or create a database file.
type ConnectError struct {
	Path string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("db: connect %s: %v", e.Path, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// PrepareError covers everything that prevents producing a bound statement:
// SQL parse failures, unknown tables or columns, and parameter count
// mismatches. The variants are indistinguishable at this layer; the message
// carries whatever detail the engine reported.
type PrepareError struct {
	SQL string
	Err error
}

func (e *PrepareError) Error() string {
	return fmt.Sprintf("db: prepare %q: %v", e.SQL, e.Err)
}

func (e *PrepareError) Unwrap() error { return e.Err }

// ExecError reports that the engine rejected a step that was expected to
// succeed (constraint violations, locked database, and so on).
type ExecError struct {
	SQL string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("db: execute %q: %v", e.SQL, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// DecodeError reports a materialized row that could not be mapped into the
// requested typed value. Decoding is all-or-nothing: one bad row fails the
// whole call.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("db: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
