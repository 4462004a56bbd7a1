package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/internal/service/render"
	"github.com/sandevgo/sejarahbot/internal/transport/mcp"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve the ask_history tool over MCP stdio",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// stdout carries the protocol
		ctx, flushLog := log.NewContextWithLoggerTo(ctx, os.Stderr, debug || config.IsDebug())
		defer flushLog()

		_, store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		answerer, err := newAnswerer(config.NewQAConfig(ctx), render.FormatMarkdown, store, metrics.NewCollector())
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Msg("serving mcp on stdio")
		return mcp.New(answerer).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
