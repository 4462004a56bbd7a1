package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/core"
)

func (s *Store) AppendExchange(ctx context.Context, x core.Exchange) error {
	query := fmt.Sprintf(`INSERT INTO exchanges (id, query, answer, user_id, email, created_at) VALUES (%s)`,
		s.placeholders(6))

	_, err := s.db.ExecContext(ctx, query,
		x.ID, x.Query, x.Answer, nullString(x.UserID), nullString(x.Email), x.CreatedAt,
	)
	if err != nil {
		return core.NewRepositoryError("append exchange", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
