package db

import (
	"context"
	"database/sql"
	"fmt"
)

// prepare turns SQL text plus an ordered argument list into a prepared
// statement and its bind values. The placeholder count is checked against
// the argument list before any argument is converted; a mismatch, like a
// parse failure, is a *PrepareError.
func (d *DB) prepare(ctx context.Context, query string, args []Argument) (*sql.Stmt, []any, error) {
	stmt, err := d.sdb.PrepareContext(ctx, query)
	if err != nil {
		return nil, nil, &PrepareError{SQL: query, Err: err}
	}
	if n := countPlaceholders(query); n != len(args) {
		_ = stmt.Close()
		err := fmt.Errorf("parameter count mismatch: %d placeholders, %d arguments", n, len(args))
		return nil, nil, &PrepareError{SQL: query, Err: err}
	}
	if len(args) == 0 {
		return stmt, nil, nil
	}
	vals := make([]any, len(args))
	for i, a := range args {
		vals[i] = a.bindValue(d.width)
	}
	return stmt, vals, nil
}

// countPlaceholders counts positional ? markers in query, skipping string
// literals, quoted identifiers, and comments.
func countPlaceholders(query string) int {
	n := 0
	i := 0
	for i < len(query) {
		switch query[i] {
		case '\'':
			i = skipQuoted(query, i+1, '\'')
		case '"':
			i = skipQuoted(query, i+1, '"')
		case '`':
			i = skipQuoted(query, i+1, '`')
		case '-':
			if i+1 < len(query) && query[i+1] == '-' {
				i = skipLine(query, i+2)
			} else {
				i++
			}
		case '/':
			if i+1 < len(query) && query[i+1] == '*' {
				i = skipBlock(query, i+2)
			} else {
				i++
			}
		case '?':
			n++
			i++
		default:
			i++
		}
	}
	return n
}

// skipQuoted advances past a quoted region opened with q. A doubled quote
// escapes itself, per SQL.
func skipQuoted(s string, i int, q byte) int {
	for i < len(s) {
		if s[i] == q {
			if i+1 < len(s) && s[i+1] == q {
				i += 2
				continue
			}
			return i + 1
		}
		i++
	}
	return i
}

func skipLine(s string, i int) int {
	for i < len(s) && s[i] != '\n' {
		i++
	}
	return i
}

func skipBlock(s string, i int) int {
	for i+1 < len(s) {
		if s[i] == '*' && s[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return len(s)
}
