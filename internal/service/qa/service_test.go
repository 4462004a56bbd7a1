package qa

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/internal/service/conversation"
	"github.com/sandevgo/sejarahbot/internal/service/matcher"
	"github.com/sandevgo/sejarahbot/internal/service/render"
	"github.com/sandevgo/sejarahbot/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.QAConfig {
	return &config.QAConfig{
		AnswerFormat:  render.FormatMarkdown,
		QueryTimeout:  time.Second,
		MaxQueryRunes: 50,
		MaxInflight:   4,
	}
}

type fixture struct {
	store   *memory.Store
	metrics *metrics.Collector
	svc     *Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.AddEvent(ctx, core.Event{
		Title:       "Perang Dunia II",
		Description: "Konflik global 1939-1945.",
		Keywords:    "perang dunia kedua",
	}))
	require.NoError(t, store.AddFigure(ctx, core.Figure{
		Name:        "Cleopatra",
		Description: "Ratu terakhir Mesir Ptolemeus.",
	}))

	mc := metrics.NewCollector()
	svc := NewService(
		testConfig(),
		matcher.NewMatcher(store),
		render.NewRenderer(render.MarkdownFormatter{}),
		conversation.NewRecorder(store),
		mc,
	)
	return fixture{store: store, metrics: mc, svc: svc}
}

func TestAsk_EventMatch(t *testing.T) {
	f := newFixture(t)
	id := &core.Identity{ID: "u1", Email: "u1@example.com"}

	answer, err := f.svc.Ask(context.Background(), id, "perang dunia kedua")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(answer, "### Perang Dunia II\n"))

	logged := f.store.Exchanges()
	require.Len(t, logged, 1)
	assert.Equal(t, "perang dunia kedua", logged[0].Query)
	assert.Equal(t, answer, logged[0].Answer)
	assert.Equal(t, "u1", logged[0].UserID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Queries.WithLabelValues("event")))
}

func TestAsk_NotFoundIsLogged(t *testing.T) {
	f := newFixture(t)

	answer, err := f.svc.Ask(context.Background(), nil, "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, render.NotFoundMessage, answer)

	logged := f.store.Exchanges()
	require.Len(t, logged, 1)
	assert.Equal(t, "Atlantis", logged[0].Query)
	assert.Equal(t, render.NotFoundMessage, logged[0].Answer)
	assert.Empty(t, logged[0].UserID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.Queries.WithLabelValues("not_found")))
}

func TestAsk_OneExchangePerQuery(t *testing.T) {
	f := newFixture(t)
	queries := []string{"Cleopatra", "Atlantis", "perang", "  Cleopatra  "}

	for _, q := range queries {
		answer, err := f.svc.Ask(context.Background(), nil, q)
		require.NoError(t, err)

		logged := f.store.Exchanges()
		last := logged[len(logged)-1]
		assert.Equal(t, q, last.Query)
		assert.Equal(t, answer, last.Answer)
	}
	assert.Len(t, f.store.Exchanges(), len(queries))
}

func TestAsk_RejectsBadQueries(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		query string
		want  error
		msg   string
	}{
		{"empty", "", ErrEmptyQuery, msgEmptyQuery},
		{"blank", " \t\n", ErrEmptyQuery, msgEmptyQuery},
		{"too long", strings.Repeat("a", 51), ErrQueryTooLong, msgQueryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Ask(context.Background(), nil, tt.query)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
			assert.Equal(t, tt.msg, ClientMessage(err))
		})
	}
	assert.Empty(t, f.store.Exchanges())
}

func TestAsk_MultibyteLimitCountsRunes(t *testing.T) {
	f := newFixture(t)

	// 50 runes, 100 bytes.
	_, err := f.svc.Ask(context.Background(), nil, strings.Repeat("é", 50))
	assert.NoError(t, err)
}

type brokenFacts struct{}

func (brokenFacts) FindEventBySubstring(context.Context, string) (*core.Event, error) {
	return nil, core.NewRepositoryError("find event", errors.New("dial tcp: connection refused"))
}

func (brokenFacts) FindFigureBySubstring(context.Context, string) (*core.Figure, error) {
	return nil, nil
}

func TestAsk_RepositoryError(t *testing.T) {
	store := memory.NewStore()
	mc := metrics.NewCollector()
	svc := NewService(testConfig(), matcher.NewMatcher(brokenFacts{}),
		render.NewRenderer(render.MarkdownFormatter{}), conversation.NewRecorder(store), mc)

	_, err := svc.Ask(context.Background(), nil, "Cleopatra")
	require.ErrorIs(t, err, core.ErrRepository)

	msg := ClientMessage(err)
	assert.Equal(t, msgInternal, msg)
	assert.NotContains(t, msg, "connection refused")
	assert.Empty(t, store.Exchanges())
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.Queries.WithLabelValues("error")))
}

type brokenLog struct{}

func (brokenLog) AppendExchange(context.Context, core.Exchange) error {
	return core.NewRepositoryError("append exchange", errors.New("disk full"))
}

func TestAsk_LogFailureStillAnswers(t *testing.T) {
	facts := memory.NewStore()
	require.NoError(t, facts.AddFigure(context.Background(), core.Figure{Name: "Cleopatra", Description: "Ratu"}))
	mc := metrics.NewCollector()
	svc := NewService(testConfig(), matcher.NewMatcher(facts),
		render.NewRenderer(render.MarkdownFormatter{}), conversation.NewRecorder(brokenLog{}), mc)

	answer, err := svc.Ask(context.Background(), nil, "cleopatra")
	require.NoError(t, err)
	assert.Contains(t, answer, "Cleopatra")
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.ExchangeLogFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(mc.Queries.WithLabelValues("figure")))
}

type slowFacts struct{}

func (slowFacts) FindEventBySubstring(ctx context.Context, _ string) (*core.Event, error) {
	<-ctx.Done()
	return nil, core.NewRepositoryError("find event", ctx.Err())
}

func (slowFacts) FindFigureBySubstring(context.Context, string) (*core.Figure, error) {
	return nil, nil
}

func TestAsk_QueryTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.QueryTimeout = 20 * time.Millisecond
	svc := NewService(cfg, matcher.NewMatcher(slowFacts{}),
		render.NewRenderer(render.MarkdownFormatter{}), conversation.NewRecorder(memory.NewStore()), metrics.NewCollector())

	_, err := svc.Ask(context.Background(), nil, "Cleopatra")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type badRenderer struct{}

func (badRenderer) Render(core.MatchResult) (string, error) {
	return "", &core.RenderingError{Reason: "event without title"}
}

func TestAsk_RenderingError(t *testing.T) {
	f := newFixture(t)
	svc := NewService(testConfig(), matcher.NewMatcher(f.store), badRenderer{},
		conversation.NewRecorder(f.store), metrics.NewCollector())

	_, err := svc.Ask(context.Background(), nil, "Cleopatra")
	assert.ErrorIs(t, err, core.ErrRendering)
	assert.Equal(t, msgInternal, ClientMessage(err))
	assert.Empty(t, f.store.Exchanges())
}
