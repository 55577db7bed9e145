package db

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

// openTestDB opens a fresh in-memory database for one test.
func openTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	d, err := Open(":memory:", opts...)
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s) failed: %v", path, err)
	}
	defer d.Close()

	if _, err := d.Execute(context.Background(), "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
}

func TestOpenBadPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no", "such", "dir", "test.sqlite"))
	var ce *ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("Open on missing directory: got %v, want *ConnectError", err)
	}
}

func TestClosedDB(t *testing.T) {
	d, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ctx := context.Background()
	if _, err := d.Execute(ctx, "SELECT 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Execute on closed DB: got %v, want ErrClosed", err)
	}
	if _, err := d.Query(ctx, "SELECT 1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Query on closed DB: got %v, want ErrClosed", err)
	}
	if _, err := d.Tx().Execute("SELECT 1").Run(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Tx.Run on closed DB: got %v, want ErrClosed", err)
	}
	if err := d.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close: got %v, want ErrClosed", err)
	}
}

// TestRoundTrip inserts every argument kind and reads the row back through
// the dynamic Row mapping.
func TestRoundTrip(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if _, err := d.Execute(ctx, "CREATE TABLE vals (t TEXT, i INTEGER, f FLOAT, b BLOB, n INTEGER)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}

	blob := []byte{0x00, 0x01, 0xfe, 0xff}
	_, err := d.Execute(ctx, "INSERT INTO vals (t, i, f, b, n) VALUES (?, ?, ?, ?, ?)",
		Text("hello"), Int(-42), Float(2.5), Blob(blob), Null())
	if err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}

	rows, err := d.Query(ctx, "SELECT * FROM vals")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]

	if v, ok := r.Text("t"); !ok || v != "hello" {
		t.Errorf("t = %q (ok=%v), want %q", v, ok, "hello")
	}
	if v, ok := r.Int("i"); !ok || v != -42 {
		t.Errorf("i = %d (ok=%v), want -42", v, ok)
	}
	if v, ok := r.Float("f"); !ok || v != 2.5 {
		t.Errorf("f = %v (ok=%v), want 2.5", v, ok)
	}
	if v, ok := r.Blob("b"); !ok || !bytes.Equal(v, blob) {
		t.Errorf("b = %x (ok=%v), want %x", v, ok, blob)
	}
	if r.Has("n") {
		t.Errorf("n is present in row, want NULL column omitted")
	}
}

// TestUntypedColumnPerRow stores values of three storage classes in a column
// declared with no type; each cell must decode per its own runtime class.
func TestUntypedColumnPerRow(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if _, err := d.Execute(ctx, "CREATE TABLE kv (v)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	for _, arg := range []Argument{Int(42), Text("hello"), Float(2.5)} {
		if _, err := d.Execute(ctx, "INSERT INTO kv (v) VALUES (?)", arg); err != nil {
			t.Fatalf("INSERT failed: %v", err)
		}
	}

	rows, err := d.Query(ctx, "SELECT v FROM kv ORDER BY rowid")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if v, ok := rows[0].Int("v"); !ok || v != 42 {
		t.Errorf("row 0: v = %v, want int64 42", rows[0]["v"])
	}
	if v, ok := rows[1].Text("v"); !ok || v != "hello" {
		t.Errorf("row 1: v = %v, want %q", rows[1]["v"], "hello")
	}
	if v, ok := rows[2].Float("v"); !ok || v != 2.5 {
		t.Errorf("row 2: v = %v, want 2.5", rows[2]["v"])
	}
}

func TestEmptyResult(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	if _, err := d.Execute(ctx, "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	rows, err := d.Query(ctx, "SELECT * FROM t")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if rows == nil {
		t.Fatalf("empty result is nil, want empty slice")
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

// TestIntWidth verifies the default 64-bit binding preserves large values
// and the 32-bit compatibility option truncates them.
func TestIntWidth(t *testing.T) {
	ctx := context.Background()
	big := int64(math.MaxInt64 - 11)

	d := openTestDB(t)
	if _, err := d.Execute(ctx, "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	if _, err := d.Execute(ctx, "INSERT INTO t (x) VALUES (?)", Int(big)); err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}
	rows, err := d.Query(ctx, "SELECT x FROM t")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if v, _ := rows[0].Int("x"); v != big {
		t.Errorf("64-bit bind: x = %d, want %d", v, big)
	}

	d32 := openTestDB(t, WithIntWidth(BindInt32))
	if _, err := d32.Execute(ctx, "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("CREATE TABLE failed: %v", err)
	}
	if _, err := d32.Execute(ctx, "INSERT INTO t (x) VALUES (?)", Int(big)); err != nil {
		t.Fatalf("INSERT failed: %v", err)
	}
	rows, err = d32.Query(ctx, "SELECT x FROM t")
	if err != nil {
		t.Fatalf("SELECT failed: %v", err)
	}
	if v, _ := rows[0].Int("x"); v != int64(int32(big)) {
		t.Errorf("32-bit bind: x = %d, want %d", v, int64(int32(big)))
	}
}

// TestForeignKeyViolation verifies the WithForeignKeys option takes effect:
// inserting a child row without its parent fails with *ExecError.
func TestForeignKeyViolation(t *testing.T) {
	d := openTestDB(t, WithForeignKeys())
	ctx := context.Background()

	if _, err := d.Execute(ctx, "CREATE TABLE parents (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("CREATE TABLE parents failed: %v", err)
	}
	if _, err := d.Execute(ctx, "CREATE TABLE children (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parents(id))"); err != nil {
		t.Fatalf("CREATE TABLE children failed: %v", err)
	}

	_, err := d.Execute(ctx, "INSERT INTO children (parent_id) VALUES (?)", Int(99))
	var ee *ExecError
	if !errors.As(err, &ee) {
		t.Fatalf("insert orphan child: got %v, want *ExecError", err)
	}
}
