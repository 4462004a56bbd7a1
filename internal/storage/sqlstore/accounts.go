package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/core"
)

const accountColumns = `id, name, email, password_hash, role, verified, verification_code, code_expires_at, created_at`

func (s *Store) CreateAccount(ctx context.Context, a core.Account) error {
	query := fmt.Sprintf(`INSERT INTO accounts (%s) VALUES (%s)`, accountColumns, s.placeholders(9))
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Email, a.PasswordHash, a.Role, a.Verified,
		a.VerificationCode, nullTime(a), a.CreatedAt,
	)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return fmt.Errorf("account %q: %w", a.Email, core.ErrConflict)
		}
		return core.NewRepositoryError("insert account", err)
	}
	return nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*core.Account, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounts WHERE email = %s`, accountColumns, s.dialect.Placeholder(1))

	var a core.Account
	var expires sql.NullTime
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.Verified,
		&a.VerificationCode, &expires, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %q: %w", email, core.ErrNotFound)
	}
	if err != nil {
		return nil, core.NewRepositoryError("get account", err)
	}
	a.CodeExpiresAt = expires.Time
	return &a, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a core.Account) error {
	query := fmt.Sprintf(`UPDATE accounts SET name = %s, password_hash = %s, role = %s, verified = %s,
		verification_code = %s, code_expires_at = %s WHERE id = %s`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3),
		s.dialect.Placeholder(4), s.dialect.Placeholder(5), s.dialect.Placeholder(6),
		s.dialect.Placeholder(7))

	res, err := s.db.ExecContext(ctx, query,
		a.Name, a.PasswordHash, a.Role, a.Verified, a.VerificationCode, nullTime(a), a.ID,
	)
	if err != nil {
		return core.NewRepositoryError("update account", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.NewRepositoryError("update account", err)
	}
	if n == 0 {
		return fmt.Errorf("account %q: %w", a.ID, core.ErrNotFound)
	}
	return nil
}

func nullTime(a core.Account) sql.NullTime {
	return sql.NullTime{Time: a.CodeExpiresAt, Valid: !a.CodeExpiresAt.IsZero()}
}
