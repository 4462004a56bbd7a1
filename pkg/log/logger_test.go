package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCtx_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewTestContext(context.Background(), &buf)

	FromCtx(ctx).Info().Str("k", "v").Msg("hello")

	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestNewStdLoggerFromCtx(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewTestContext(context.Background(), &buf)

	NewStdLoggerFromCtx(ctx, "mcp").Print("bridge line")

	out := buf.String()
	assert.Contains(t, out, `"component":"mcp"`)
	assert.True(t, strings.Contains(out, "bridge line"), out)
}

func TestMigrationLogger_Printf(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewTestContext(context.Background(), &buf)

	NewMigrationLoggerFromCtx(ctx).Printf("OK   %s (%d)\n", "00001_init.sql", 3)

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"component":"migrate"`)
	assert.Contains(t, out, `"message":"OK   00001_init.sql (3)"`)
}
