package db

import "context"

type stmtKind uint8

const (
	stmtExecute stmtKind = iota
	stmtQuery
)

// txStmt is one queued statement; the kind decides which connection
// primitive runs it.
type txStmt struct {
	kind stmtKind
	sql  string
	args []Argument
}

// TxResult is the outcome of one statement in a committed transaction:
// Count for execute statements, Rows for query statements.
type TxResult struct {
	Count int64
	Rows  []Row
}

// Tx accumulates an ordered list of statements and runs them inside a
// single BEGIN/COMMIT with all-or-nothing semantics. The queueing methods
// perform no engine I/O and return the builder for chaining; nothing
// touches the database until Run.
type Tx struct {
	db    *DB
	stmts []txStmt
}

// Tx returns an empty transaction builder bound to the connection.
func (d *DB) Tx() *Tx { return &Tx{db: d} }

// Execute queues a non-query statement.
func (t *Tx) Execute(query string, args ...Argument) *Tx {
	t.stmts = append(t.stmts, txStmt{kind: stmtExecute, sql: query, args: args})
	return t
}

// Query queues a row-returning statement.
func (t *Tx) Query(query string, args ...Argument) *Tx {
	t.stmts = append(t.stmts, txStmt{kind: stmtQuery, sql: query, args: args})
	return t
}

// Insert queues a single-row insert for v.
func (t *Tx) Insert(v Insertable) *Tx {
	query, args := insertStatement(v)
	return t.Execute(query, args...)
}

// InsertAll queues one multi-row insert for the given values. An empty
// batch queues nothing.
func (t *Tx) InsertAll(vs ...Insertable) *Tx {
	if len(vs) == 0 {
		return t
	}
	query, args := batchInsertStatement(vs)
	return t.Execute(query, args...)
}

// Run issues BEGIN, executes the queued statements strictly in enqueue
// order, and returns their results positionally after COMMIT. The first
// failure stops the queue, rolls the transaction back, and is returned
// unchanged; the rollback's own outcome is not surfaced. There are no
// savepoints and no partial commit.
func (t *Tx) Run(ctx context.Context) ([]TxResult, error) {
	if t.db.closed() {
		return nil, ErrClosed
	}
	if _, err := t.db.Execute(ctx, "BEGIN"); err != nil {
		return nil, err
	}
	results := make([]TxResult, 0, len(t.stmts))
	for _, s := range t.stmts {
		switch s.kind {
		case stmtQuery:
			rows, err := t.db.Query(ctx, s.sql, s.args...)
			if err != nil {
				t.rollback(ctx)
				return nil, err
			}
			results = append(results, TxResult{Rows: rows})
		default:
			n, err := t.db.Execute(ctx, s.sql, s.args...)
			if err != nil {
				t.rollback(ctx)
				return nil, err
			}
			results = append(results, TxResult{Count: n})
		}
	}
	if _, err := t.db.Execute(ctx, "COMMIT"); err != nil {
		t.rollback(ctx)
		return nil, err
	}
	return results, nil
}

func (t *Tx) rollback(ctx context.Context) {
	_, _ = t.db.Execute(ctx, "ROLLBACK")
}
