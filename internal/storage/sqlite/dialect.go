package sqlite

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/sandevgo/sejarahbot/internal/storage/sqlstore"
)

var Dialect = sqlstore.Dialect{
	Name: "sqlite3",
	Placeholder: func(n int) string {
		return fmt.Sprintf("?%d", n)
	},
	Contains: func(column, param string) string {
		return fmt.Sprintf("instr(fold(%s), %s) > 0", column, param)
	},
	// BINARY collation compares bytes.
	OrderBy: func(column string) string {
		return column
	},
	IsUniqueViolation: func(err error) bool {
		var se sqlite3.Error
		if !errors.As(err, &se) {
			return false
		}
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	},
}
