package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/pkg/validate"
)

// Service is the administrative side of the fact collections.
type Service struct {
	repo     core.CatalogRepository
	validate *validate.Validator
	now      func() time.Time
}

func NewService(repo core.CatalogRepository) *Service {
	return &Service{
		repo:     repo,
		validate: validate.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) AddEvent(ctx context.Context, e core.Event) (core.Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	if err := s.validate.Struct(e); err != nil {
		return core.Event{}, fmt.Errorf("%w: %w", core.ErrInvalidInput, err)
	}
	e.CreatedAt = s.now()

	if err := s.repo.AddEvent(ctx, e); err != nil {
		return core.Event{}, err
	}
	return e, nil
}

func (s *Service) AddFigure(ctx context.Context, f core.Figure) (core.Figure, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := s.validate.Struct(f); err != nil {
		return core.Figure{}, fmt.Errorf("%w: %w", core.ErrInvalidInput, err)
	}
	f.CreatedAt = s.now()

	if err := s.repo.AddFigure(ctx, f); err != nil {
		return core.Figure{}, err
	}
	return f, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]core.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *Service) ListFigures(ctx context.Context) ([]core.Figure, error) {
	return s.repo.ListFigures(ctx)
}
