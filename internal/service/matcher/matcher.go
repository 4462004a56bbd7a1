package matcher

import (
	"context"
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/core"
)

// Matcher resolves free text against the fact repository. Events take
// precedence over figures; there is no scoring.
type Matcher struct {
	facts core.FactRepository
}

func NewMatcher(facts core.FactRepository) *Matcher {
	return &Matcher{facts: facts}
}

func (m *Matcher) Match(ctx context.Context, text string) (core.MatchResult, error) {
	event, err := m.facts.FindEventBySubstring(ctx, text)
	if err != nil {
		return core.MatchResult{}, fmt.Errorf("failed to search events: %w", err)
	}
	if event != nil {
		return core.EventMatch(event), nil
	}

	figure, err := m.facts.FindFigureBySubstring(ctx, text)
	if err != nil {
		return core.MatchResult{}, fmt.Errorf("failed to search figures: %w", err)
	}
	if figure != nil {
		return core.FigureMatch(figure), nil
	}

	return core.NotFound(), nil
}
