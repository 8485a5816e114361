package flow

import (
	"fmt"

	"github.com/flowsql/flow/qb"
)

// Dialect describes placeholder and identifier quoting conventions of a
// backend. The concrete definitions live in the qb package so statement
// rendering does not depend on this package.
type Dialect = qb.Dialect

var Dialects = qb.Dialects

func getDialect(driver string) (*Dialect, error) {
	switch driver {
	case "mysql":
		return Dialects.MySQL, nil
	case "sqlite", "sqlite3":
		return Dialects.SQLite3, nil
	case "postgres":
		return Dialects.PostgreSQL, nil
	default:
		return nil, fmt.Errorf("err no dialect matched with driver %s", driver)
	}
}
