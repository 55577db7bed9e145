package db

import (
	"database/sql"
	"strings"
)

type stmtClass uint8

const (
	classOther stmtClass = iota
	classInsert
	classMutate
)

// classifyText decides what a completed non-query statement should report,
// from a case-insensitive prefix of the trimmed SQL text: "INSERT " (with
// trailing space) reports the last-inserted row id, "UPDATE" and "DELETE"
// report the affected-row count, anything else a constant one.
//
// This is a heuristic, not a parser: multi-statement text or SQL hidden
// behind leading comments classifies as "other".
func classifyText(query string) stmtClass {
	s := strings.TrimSpace(query)
	if len(s) >= 7 && strings.EqualFold(s[:7], "INSERT ") {
		return classInsert
	}
	if len(s) >= 6 && (strings.EqualFold(s[:6], "UPDATE") || strings.EqualFold(s[:6], "DELETE")) {
		return classMutate
	}
	return classOther
}

// classify maps a successful execution to its integer result. An engine
// reporting zero affected rows for UPDATE/DELETE is floored to one so that
// "statement succeeded" is still distinguishable from failure.
func classify(query string, res sql.Result) (int64, error) {
	switch classifyText(query) {
	case classInsert:
		id, err := res.LastInsertId()
		if err != nil {
			return 0, &ExecError{SQL: query, Err: err}
		}
		return id, nil
	case classMutate:
		n, err := res.RowsAffected()
		if err != nil {
			return 0, &ExecError{SQL: query, Err: err}
		}
		if n == 0 {
			return 1, nil
		}
		return n, nil
	default:
		return 1, nil
	}
}
