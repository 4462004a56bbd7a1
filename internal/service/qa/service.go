package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

var (
	ErrEmptyQuery   = fmt.Errorf("empty query: %w", core.ErrInvalidInput)
	ErrQueryTooLong = fmt.Errorf("query too long: %w", core.ErrInvalidInput)
)

const outcomeError = "error"

type Matcher interface {
	Match(ctx context.Context, text string) (core.MatchResult, error)
}

type Renderer interface {
	Render(res core.MatchResult) (string, error)
}

type Recorder interface {
	Record(ctx context.Context, query, answer string, identity *core.Identity) (core.Exchange, error)
}

// Service runs the match, render and log pipeline for one query.
type Service struct {
	cfg      *config.QAConfig
	matcher  Matcher
	renderer Renderer
	recorder Recorder
	metrics  *metrics.Collector
}

func NewService(cfg *config.QAConfig, m Matcher, r Renderer, rec Recorder, mc *metrics.Collector) *Service {
	return &Service{
		cfg:      cfg,
		matcher:  m,
		renderer: r,
		recorder: rec,
		metrics:  mc,
	}
}

// Ask answers query on behalf of identity, which may be nil. A failed
// exchange write is reported to operators and does not fail the answer.
func (s *Service) Ask(ctx context.Context, identity *core.Identity, query string) (string, error) {
	start := time.Now()
	logger := log.FromCtx(ctx)

	text := strings.TrimSpace(query)
	if text == "" {
		s.metrics.ObserveQuery(outcomeError, time.Since(start))
		return "", ErrEmptyQuery
	}
	if s.cfg.MaxQueryRunes > 0 && utf8.RuneCountInString(text) > s.cfg.MaxQueryRunes {
		s.metrics.ObserveQuery(outcomeError, time.Since(start))
		return "", ErrQueryTooLong
	}

	matchCtx, cancel := s.withTimeout(ctx)
	res, err := s.matcher.Match(matchCtx, text)
	cancel()
	if err != nil {
		s.metrics.ObserveQuery(outcomeError, time.Since(start))
		return "", fmt.Errorf("failed to match query: %w", err)
	}

	answer, err := s.renderer.Render(res)
	if err != nil {
		s.metrics.ObserveQuery(outcomeError, time.Since(start))
		return "", fmt.Errorf("failed to render answer: %w", err)
	}

	// The answer is already computed, so the write outlives a closed channel.
	logCtx, cancel := s.withTimeout(context.WithoutCancel(ctx))
	_, err = s.recorder.Record(logCtx, query, answer, identity)
	cancel()
	if err != nil {
		s.metrics.ExchangeLogFailures.Inc()
		logger.Warn().Err(err).Str("outcome", res.Kind.String()).Msg("failed to log exchange")
	}

	s.metrics.ObserveQuery(res.Kind.String(), time.Since(start))
	logger.Debug().
		Str("outcome", res.Kind.String()).
		Dur("elapsed", time.Since(start)).
		Msg("query answered")

	return answer, nil
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.QueryTimeout)
}

const (
	msgEmptyQuery   = "Pertanyaan tidak boleh kosong"
	msgQueryTooLong = "Pertanyaan terlalu panjang"
	msgInternal     = "Terjadi kesalahan saat memproses pertanyaan"
)

// ClientMessage maps a pipeline error to text safe to show the requester.
func ClientMessage(err error) string {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return msgEmptyQuery
	case errors.Is(err, ErrQueryTooLong):
		return msgQueryTooLong
	default:
		return msgInternal
	}
}
