package db

// Argument is a value bound into a statement parameter: a closed union over
// text, integer, floating-point, blob, and null. Arguments are immutable
// value types; a blob's bytes are copied at construction so the caller's
// buffer is never retained.
type Argument struct {
	kind argKind
	text string
	num  int64
	fp   float64
	blob []byte
}

type argKind uint8

const (
	argNull argKind = iota
	argText
	argInt
	argFloat
	argBlob
)

// Text returns a text argument.
func Text(s string) Argument { return Argument{kind: argText, text: s} }

// Int returns an integer argument. Values are carried at 64-bit width; the
// width used at bind time is a connection option (see BindInt32).
func Int(v int64) Argument { return Argument{kind: argInt, num: v} }

// Float returns a double-precision floating-point argument.
func Float(v float64) Argument { return Argument{kind: argFloat, fp: v} }

// Blob returns a binary argument. The bytes are copied.
func Blob(b []byte) Argument {
	return Argument{kind: argBlob, blob: append([]byte(nil), b...)}
}

// Null returns a null argument.
func Null() Argument { return Argument{kind: argNull} }

// IntWidth selects the native width integer arguments are bound at.
type IntWidth uint8

const (
	// BindInt64 binds integers at full 64-bit width. This is the default.
	BindInt64 IntWidth = iota

	// BindInt32 truncates integers to 32 bits at bind time, matching engines
	// and clients that bind through a 32-bit integer API. Lossy for values
	// outside the int32 range.
	BindInt32
)

// bindValue converts the argument into the value handed to the engine.
func (a Argument) bindValue(width IntWidth) any {
	switch a.kind {
	case argText:
		return a.text
	case argInt:
		if width == BindInt32 {
			return int64(int32(a.num))
		}
		return a.num
	case argFloat:
		return a.fp
	case argBlob:
		return a.blob
	default:
		return nil
	}
}
