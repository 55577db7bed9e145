package db

import (
	"database/sql"
	"encoding/base64"
	"strconv"
	"time"
)

// Row maps column names to decoded values. Integer columns decode to int64,
// float columns to float64, text and date columns to string, and blob
// columns to a base64-encoded string. A NULL cell is omitted from the
// mapping entirely; use Has or the ok result of an accessor to distinguish
// absent from zero.
type Row map[string]any

// Has reports whether the row carries a non-NULL value for name.
func (r Row) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Int returns the integer value of name.
func (r Row) Int(name string) (int64, bool) {
	v, ok := r[name].(int64)
	return v, ok
}

// Float returns the floating-point value of name.
func (r Row) Float(name string) (float64, bool) {
	v, ok := r[name].(float64)
	return v, ok
}

// Text returns the text value of name.
func (r Row) Text(name string) (string, bool) {
	v, ok := r[name].(string)
	return v, ok
}

// Blob returns the decoded bytes of a blob column. Blob cells are stored in
// the row as base64 text; Blob reverses that encoding.
func (r Row) Blob(name string) ([]byte, bool) {
	s, ok := r[name].(string)
	if !ok {
		return nil, false
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// materialize steps rows to exhaustion and decodes every cell per its
// resolved column type. Declared types are resolved once for the whole
// statement; a column with no declared type is re-typed per cell from the
// runtime storage class. The statement handle is always released.
func materialize(query string, rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, &ExecError{SQL: query, Err: err}
	}
	names := make([]string, len(cts))
	types := make([]ColumnType, len(cts))
	for i, ct := range cts {
		names[i] = ct.Name()
		types[i] = resolveDeclared(ct.DatabaseTypeName())
	}

	cells := make([]any, len(cts))
	ptrs := make([]any, len(cts))
	for i := range cells {
		ptrs[i] = &cells[i]
	}

	out := []Row{}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &ExecError{SQL: query, Err: err}
		}
		row := make(Row, len(cts))
		for i, raw := range cells {
			t := types[i]
			if t == TypeAny {
				t = storageClass(raw)
			}
			if v, ok := decodeCell(raw, t); ok {
				row[names[i]] = v
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecError{SQL: query, Err: err}
	}
	return out, nil
}

// decodeCell coerces one raw engine value to the resolved column type.
// ok is false for NULL cells, which are left out of the row.
func decodeCell(raw any, t ColumnType) (any, bool) {
	if raw == nil || t == TypeNull {
		return nil, false
	}
	switch t {
	case TypeInt:
		return asInt(raw), true
	case TypeFloat:
		return asFloat(raw), true
	case TypeBlob:
		return base64.StdEncoding.EncodeToString(asBytes(raw)), true
	default:
		// Text, date, and anything unrecognized decode as text.
		return asText(raw), true
	}
}

// The as* helpers mirror the engine's own lossy coercions: a cell whose
// storage class differs from the declared type converts the way
// sqlite3_column_* would, with unparseable text becoming zero.

func asInt(v any) int64 {
	switch v := v.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch v := v.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func asBytes(v any) []byte {
	switch v := v.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return []byte(asText(v))
	}
}

func asText(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}
