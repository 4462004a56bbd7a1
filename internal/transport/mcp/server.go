// Package mcp exposes the question answering pipeline as an MCP tool over
// stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/service/qa"
	"github.com/sandevgo/sejarahbot/pkg/log"
)

const (
	ToolAskHistory = "ask_history"
	serverName     = core.AppName + " MCP"
)

type Server struct {
	mcpServer *server.MCPServer
}

func New(answerer core.Answerer) *Server {
	s := server.NewMCPServer(
		serverName,
		core.AppVersion,
		server.WithToolCapabilities(false),
	)
	s.AddTool(askHistoryTool(), askHistoryHandler(answerer))
	return &Server{mcpServer: s}
}

// Serve reads requests from in and writes responses to out until ctx is
// cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.NewStdLoggerFromCtx(ctx, "mcp"))

	if err := stdio.Listen(ctx, in, out); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve mcp: %w", err)
	}
	return nil
}

func askHistoryTool() mcp.Tool {
	return mcp.NewTool(
		ToolAskHistory,
		mcp.WithDescription("Answers a question about a historical event or figure from the catalog"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text question, e.g. \"Siapa Cleopatra?\""),
		),
	)
}

// Tool calls run without a requester identity.
func askHistoryHandler(answerer core.Answerer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		answer, err := answerer.Ask(ctx, nil, query)
		if err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("ask_history failed")
			return mcp.NewToolResultError(qa.ClientMessage(err)), nil
		}
		return mcp.NewToolResultText(answer), nil
	}
}
