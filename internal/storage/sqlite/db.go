package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/sejarahbot/internal/storage/sqlstore"
	"github.com/sandevgo/sejarahbot/pkg/retry"
	pkgsqlite "github.com/sandevgo/sejarahbot/pkg/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

//go:embed migrations/*.sql
var embedMigrations embed.FS

func NewDB(ctx context.Context, dbPath string) (*sql.DB, error) {
	dsn := dbPath
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
		dsn = dbPath + "?_busy_timeout=5000&_journal_mode=WAL"
	}

	db, err := sql.Open(pkgsqlite.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if dbPath == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	err = retry.NewDefaultRetrier().Do(ctx, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := sqlstore.Migrate(ctx, db, embedMigrations, "sqlite3", "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// NewStore opens dbPath and returns a store backed by it.
func NewStore(ctx context.Context, dbPath string) (*sqlstore.Store, error) {
	db, err := NewDB(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return sqlstore.New(db, Dialect), nil
}
