package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

type QAConfig struct {
	// html, markdown, text or json
	AnswerFormat  string        `env:"ANSWER_FORMAT" envDefault:"html"`
	QueryTimeout  time.Duration `env:"QA_QUERY_TIMEOUT" envDefault:"5s"`
	MaxQueryRunes int           `env:"QA_MAX_QUERY_RUNES" envDefault:"500"`
	// Concurrent queries per session channel
	MaxInflight int `env:"QA_MAX_INFLIGHT" envDefault:"8"`
}

func NewQAConfig(ctx context.Context) *QAConfig {
	c := &QAConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse QA config")
	}
	return c
}
