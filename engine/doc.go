// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening single-connection database handles with
// common pragmas applied, and registering scalar SQL functions. It
// intentionally keeps a thin surface so other packages can share the same
// driver instance.
package engine
