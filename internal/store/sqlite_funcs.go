package store

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite"
)

// SQLite's built-in lower() folds ASCII only, so titles such as
// "Разработчик" would not match case-insensitively. unicode_lower folds
// with Go's Unicode tables instead.
const sqliteLowerFunc = "unicode_lower"

var (
	registerFuncsOnce sync.Once
	registerFuncsErr  error
)

// registerSQLiteFuncs registers the custom scalar functions with the sqlite
// driver. Registration is process-wide, so it runs once.
func registerSQLiteFuncs() error {
	registerFuncsOnce.Do(func() {
		err := sqlite.RegisterDeterministicScalarFunction(sqliteLowerFunc, 1, unicodeLower)
		if err != nil {
			registerFuncsErr = fmt.Errorf("registering sqlite function %s: %w", sqliteLowerFunc, err)
		}
	})
	return registerFuncsErr
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return strings.ToLower(fmt.Sprint(v)), nil
	}
}
