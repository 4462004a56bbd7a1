package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

// goose keeps its base FS and dialect in package globals.
var migrateMu sync.Mutex

// Migrate applies every migration under dir in fsys using the goose dialect.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, dialect, dir string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetBaseFS(fsys)
	goose.SetLogger(log.NewMigrationLoggerFromCtx(ctx))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}
