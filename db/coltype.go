package db

import (
	"strings"
	"time"
)

// ColumnType is the logical type resolved for a result column.
type ColumnType uint8

const (
	// TypeAny marks a column with no declared SQL type (expressions,
	// sub-query results). Its cells are typed per row from the runtime
	// storage class.
	TypeAny ColumnType = iota
	TypeInt
	TypeFloat
	TypeText
	TypeBlob
	TypeNull

	// TypeDate is accepted for DATE/DATETIME-family declarations but decodes
	// the same way as text.
	TypeDate
)

var declaredTypes = map[string]ColumnType{
	"BIGINT":    TypeInt,
	"BIT":       TypeInt,
	"BOOL":      TypeInt,
	"BOOLEAN":   TypeInt,
	"INT":       TypeInt,
	"INT2":      TypeInt,
	"INT8":      TypeInt,
	"INTEGER":   TypeInt,
	"MEDIUMINT": TypeInt,
	"SMALLINT":  TypeInt,
	"TINYINT":   TypeInt,

	"DECIMAL":          TypeFloat,
	"DOUBLE":           TypeFloat,
	"DOUBLE PRECISION": TypeFloat,
	"FLOAT":            TypeFloat,
	"NUMERIC":          TypeFloat,
	"REAL":             TypeFloat,

	"CHAR":                       TypeText,
	"CHARACTER":                  TypeText,
	"CLOB":                       TypeText,
	"NATIONAL VARYING CHARACTER": TypeText,
	"NATIVE CHARACTER":           TypeText,
	"NCHAR":                      TypeText,
	"NVARCHAR":                   TypeText,
	"TEXT":                       TypeText,
	"VARCHAR":                    TypeText,
	"VARIANT":                    TypeText,
	"VARYING CHARACTER":          TypeText,

	"BINARY":    TypeBlob,
	"BLOB":      TypeBlob,
	"VARBINARY": TypeBlob,

	"NULL": TypeNull,

	"DATE":      TypeDate,
	"DATETIME":  TypeDate,
	"TIME":      TypeDate,
	"TIMESTAMP": TypeDate,
}

// resolveDeclared classifies a column's declared SQL type annotation. The
// name is uppercased and any parenthesized size/precision suffix is dropped,
// so VARCHAR(255) classifies like VARCHAR. Unrecognized names default to
// text; an empty declaration resolves to TypeAny.
func resolveDeclared(decl string) ColumnType {
	if decl == "" {
		return TypeAny
	}
	s := strings.ToUpper(strings.TrimSpace(decl))
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if t, ok := declaredTypes[s]; ok {
		return t
	}
	return TypeText
}

// storageClass types a single cell from the dynamic value the engine
// produced for it. Used for columns with no declared type, where the class
// can legitimately vary row to row.
func storageClass(v any) ColumnType {
	switch v.(type) {
	case nil:
		return TypeNull
	case int64, bool:
		return TypeInt
	case float64:
		return TypeFloat
	case []byte:
		return TypeBlob
	case time.Time:
		return TypeDate
	default:
		return TypeText
	}
}
