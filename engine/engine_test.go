package engine

import (
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	sqlite "modernc.org/sqlite"
)

// TestOpenInMemory verifies that we can open an in-memory SQLite database
// using the modernc.org/sqlite driver and execute a trivial statement.
func TestOpenInMemory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE t(x INTEGER)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	if _, err := db.Exec("INSERT INTO t(x) VALUES (1),(2),(3)"); err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}
}

// TestOpenForeignKeys verifies the foreign_keys pragma is applied to the
// connection when requested.
func TestOpenForeignKeys(t *testing.T) {
	db, err := Open(":memory:", WithForeignKeys(), WithBusyTimeout(time.Second))
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	var on int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		t.Fatalf("PRAGMA foreign_keys failed: %v", err)
	}
	if on != 1 {
		t.Errorf("foreign_keys = %d, want 1", on)
	}
}

// TestRegisterScalarFunction registers a scalar function and calls it from
// SQL on a connection opened after registration.
func TestRegisterScalarFunction(t *testing.T) {
	err := RegisterScalarFunction("litedb_double", 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		v, ok := args[0].(int64)
		if !ok {
			return nil, fmt.Errorf("litedb_double: want INTEGER, got %T", args[0])
		}
		return v * 2, nil
	})
	if err != nil {
		t.Fatalf("RegisterScalarFunction failed: %v", err)
	}

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	var got int64
	if err := db.QueryRow("SELECT litedb_double(21)").Scan(&got); err != nil {
		t.Fatalf("SELECT litedb_double(21) failed: %v", err)
	}
	if got != 42 {
		t.Errorf("litedb_double(21) = %d, want 42", got)
	}
}
