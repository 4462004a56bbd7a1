package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/sandevgo/sejarahbot/pkg/conv"
)

// DriverName is the database/sql driver with the text helpers installed
// on every connection.
const DriverName = "sqlite3_sejarah"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// fold(text) mirrors conv.Fold so SQL and in-memory matching agree.
			return conn.RegisterFunc("fold", conv.Fold, true)
		},
	})
}
