package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

type AuthConfig struct {
	Secret  string        `env:"JWT_SECRET,required,notEmpty"`
	Issuer  string        `env:"JWT_ISSUER" envDefault:"sejarahbot"`
	TTL     time.Duration `env:"JWT_TTL" envDefault:"168h"`
	CodeTTL time.Duration `env:"VERIFICATION_CODE_TTL" envDefault:"15m"`
}

func NewAuthConfig(ctx context.Context) *AuthConfig {
	c := &AuthConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Auth config")
	}
	return c
}
