package engine

import (
	"database/sql/driver"

	sqlite "modernc.org/sqlite"
)

// ScalarFunc is the implementation of a scalar SQL function. Arguments arrive
// as driver values (int64, float64, string, []byte, or nil) and the returned
// value must be one of the same kinds.
type ScalarFunc = func(ctx *sqlite.FunctionContext, args []driver.Value) (driver.Value, error)

// RegisterScalarFunction registers a deterministic scalar SQL function with
// the driver so it is available on connections opened after this call.
// Note: existing open connections will not see new functions.
func RegisterScalarFunction(name string, nArg int32, fn ScalarFunc) error {
	return sqlite.RegisterDeterministicScalarFunction(name, nArg, fn)
}
