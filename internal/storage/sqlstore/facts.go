package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/pkg/conv"
)

const (
	eventColumns = `title, description, period, keywords, region, important_figures,
		long_term_impact, cause, effect, sources, category, image, created_at`
	figureColumns = `name, description, life_period, origin_country, expertise_field,
		primary_contribution, achievements, historical_influence, legacy, sources,
		category, keywords, image, created_at`
)

func (s *Store) FindEventBySubstring(ctx context.Context, text string) (*core.Event, error) {
	event, err := scanEvent(s.findBySubstring(ctx, core.Events, eventColumns, text))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewRepositoryError("find event", err)
	}
	return event, nil
}

func (s *Store) FindFigureBySubstring(ctx context.Context, text string) (*core.Figure, error) {
	figure, err := scanFigure(s.findBySubstring(ctx, core.Figures, figureColumns, text))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, core.NewRepositoryError("find figure", err)
	}
	return figure, nil
}

// findBySubstring selects the first row of c, in identity order, where any
// search field contains text.
func (s *Store) findBySubstring(ctx context.Context, c core.Collection, columns, text string) *sql.Row {
	param := s.dialect.Placeholder(1)
	conds := make([]string, len(c.SearchFields))
	for i, field := range c.SearchFields {
		conds[i] = s.dialect.Contains(field, param)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT 1`,
		columns, c.Name, strings.Join(conds, " OR "), s.dialect.OrderBy(c.IdentityField))

	return s.db.QueryRowContext(ctx, query, conv.Fold(text))
}

func (s *Store) AddEvent(ctx context.Context, e core.Event) error {
	figures, err := encodeList(e.ImportantFigures)
	if err != nil {
		return err
	}
	sources, err := encodeList(e.References)
	if err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`INSERT INTO events (%s) VALUES (%s)`, eventColumns, s.placeholders(13))
	_, err = s.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Period, e.Keywords, e.Region, figures,
		e.LongTermImpact, e.Cause, e.Effect, sources, e.Category, e.Image, e.CreatedAt,
	)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return fmt.Errorf("event %q: %w", e.Title, core.ErrConflict)
		}
		return core.NewRepositoryError("insert event", err)
	}
	return nil
}

func (s *Store) AddFigure(ctx context.Context, f core.Figure) error {
	achievements, err := encodeList(f.NotableAchievements)
	if err != nil {
		return err
	}
	sources, err := encodeList(f.References)
	if err != nil {
		return err
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}

	query := fmt.Sprintf(`INSERT INTO figures (%s) VALUES (%s)`, figureColumns, s.placeholders(14))
	_, err = s.db.ExecContext(ctx, query,
		f.Name, f.Description, f.LifePeriod, f.OriginCountry, f.ExpertiseField,
		f.PrimaryContribution, achievements, f.HistoricalInfluence, f.Legacy, sources,
		f.Category, f.Keywords, f.Image, f.CreatedAt,
	)
	if err != nil {
		if s.dialect.IsUniqueViolation(err) {
			return fmt.Errorf("figure %q: %w", f.Name, core.ErrConflict)
		}
		return core.NewRepositoryError("insert figure", err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context) ([]core.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events ORDER BY %s`, eventColumns, s.dialect.OrderBy("title"))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, core.NewRepositoryError("list events", err)
	}
	defer rows.Close()

	var events []core.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, core.NewRepositoryError("scan event", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewRepositoryError("list events", err)
	}
	return events, nil
}

func (s *Store) ListFigures(ctx context.Context) ([]core.Figure, error) {
	query := fmt.Sprintf(`SELECT %s FROM figures ORDER BY %s`, figureColumns, s.dialect.OrderBy("name"))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, core.NewRepositoryError("list figures", err)
	}
	defer rows.Close()

	var figures []core.Figure
	for rows.Next() {
		f, err := scanFigure(rows)
		if err != nil {
			return nil, core.NewRepositoryError("scan figure", err)
		}
		figures = append(figures, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewRepositoryError("list figures", err)
	}
	return figures, nil
}

func scanEvent(row scanner) (*core.Event, error) {
	var e core.Event
	var figures, sources string
	err := row.Scan(
		&e.Title, &e.Description, &e.Period, &e.Keywords, &e.Region, &figures,
		&e.LongTermImpact, &e.Cause, &e.Effect, &sources, &e.Category, &e.Image, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if e.ImportantFigures, err = decodeList(figures); err != nil {
		return nil, err
	}
	if e.References, err = decodeList(sources); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanFigure(row scanner) (*core.Figure, error) {
	var f core.Figure
	var achievements, sources string
	err := row.Scan(
		&f.Name, &f.Description, &f.LifePeriod, &f.OriginCountry, &f.ExpertiseField,
		&f.PrimaryContribution, &achievements, &f.HistoricalInfluence, &f.Legacy, &sources,
		&f.Category, &f.Keywords, &f.Image, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if f.NotableAchievements, err = decodeList(achievements); err != nil {
		return nil, err
	}
	if f.References, err = decodeList(sources); err != nil {
		return nil, err
	}
	return &f, nil
}
