package log

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// MigrationLogger routes goose output into the context logger at Debug.
type MigrationLogger struct {
	logger zerolog.Logger
}

func NewMigrationLoggerFromCtx(ctx context.Context) *MigrationLogger {
	return &MigrationLogger{
		logger: FromCtx(ctx).With().Str("component", "migrate").Logger(),
	}
}

func (m *MigrationLogger) Fatalf(format string, v ...any) {
	m.logger.Fatal().Msg(line(format, v...))
}

func (m *MigrationLogger) Printf(format string, v ...any) {
	m.logger.Debug().Msg(line(format, v...))
}

func line(format string, v ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, v...), "\n")
}
