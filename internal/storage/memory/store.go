// Package memory is a process-local backend, used for tests and for
// running without a database.
package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/pkg/conv"
)

// Store implements core.Store with slices kept in identity order.
type Store struct {
	mu        sync.RWMutex
	events    []core.Event
	figures   []core.Figure
	exchanges []core.Exchange
	accounts  map[string]core.Account // by email
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]core.Account),
	}
}

var eventFields = map[string]func(*core.Event) string{
	"title":       func(e *core.Event) string { return e.Title },
	"description": func(e *core.Event) string { return e.Description },
	"keywords":    func(e *core.Event) string { return e.Keywords },
}

var figureFields = map[string]func(*core.Figure) string{
	"name":            func(f *core.Figure) string { return f.Name },
	"description":     func(f *core.Figure) string { return f.Description },
	"expertise_field": func(f *core.Figure) string { return f.ExpertiseField },
	"category":        func(f *core.Figure) string { return f.Category },
	"keywords":        func(f *core.Figure) string { return f.Keywords },
}

// first returns the first record, in slice order, with any search field
// containing the folded needle.
func first[T any](records []T, fields []string, accessors map[string]func(*T) string, text string) *T {
	needle := conv.Fold(text)
	for i := range records {
		for _, field := range fields {
			if strings.Contains(conv.Fold(accessors[field](&records[i])), needle) {
				record := records[i]
				return &record
			}
		}
	}
	return nil
}

func (s *Store) FindEventBySubstring(_ context.Context, text string) (*core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return first(s.events, core.Events.SearchFields, eventFields, text), nil
}

func (s *Store) FindFigureBySubstring(_ context.Context, text string) (*core.Figure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return first(s.figures, core.Figures.SearchFields, figureFields, text), nil
}

func (s *Store) AddEvent(_ context.Context, e core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := slices.BinarySearchFunc(s.events, e.Title, func(x core.Event, title string) int {
		return strings.Compare(x.Title, title)
	})
	if found {
		return fmt.Errorf("event %q: %w", e.Title, core.ErrConflict)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.events = slices.Insert(s.events, i, e)
	return nil
}

func (s *Store) AddFigure(_ context.Context, f core.Figure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := slices.BinarySearchFunc(s.figures, f.Name, func(x core.Figure, name string) int {
		return strings.Compare(x.Name, name)
	})
	if found {
		return fmt.Errorf("figure %q: %w", f.Name, core.ErrConflict)
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	s.figures = slices.Insert(s.figures, i, f)
	return nil
}

func (s *Store) ListEvents(_ context.Context) ([]core.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.events), nil
}

func (s *Store) ListFigures(_ context.Context) ([]core.Figure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.figures), nil
}

func (s *Store) AppendExchange(_ context.Context, x core.Exchange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = append(s.exchanges, x)
	return nil
}

// Exchanges returns a snapshot of every logged exchange in append order.
func (s *Store) Exchanges() []core.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.exchanges)
}

func (s *Store) CreateAccount(_ context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[a.Email]; ok {
		return fmt.Errorf("account %q: %w", a.Email, core.ErrConflict)
	}
	s.accounts[a.Email] = a
	return nil
}

func (s *Store) GetAccountByEmail(_ context.Context, email string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[email]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", email, core.ErrNotFound)
	}
	return &a, nil
}

func (s *Store) UpdateAccount(_ context.Context, a core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, existing := range s.accounts {
		if existing.ID == a.ID {
			delete(s.accounts, email)
			s.accounts[a.Email] = a
			return nil
		}
	}
	return fmt.Errorf("account %q: %w", a.ID, core.ErrNotFound)
}
