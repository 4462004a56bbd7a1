package sqlstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// Store implements core.Store on top of database/sql for a given Dialect.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// placeholders returns "p1, p2, ..., pn" in the store's dialect.
func (s *Store) placeholders(n int) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = s.dialect.Placeholder(i + 1)
	}
	return strings.Join(marks, ", ")
}

type scanner interface {
	Scan(dest ...any) error
}

func encodeList(items []string) (string, error) {
	if len(items) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" || raw == "[]" || raw == "null" {
		return nil, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return items, nil
}
