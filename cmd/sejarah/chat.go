package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/metrics"
	"github.com/sandevgo/sejarahbot/internal/service/command"
	"github.com/sandevgo/sejarahbot/internal/service/render"
	"github.com/sandevgo/sejarahbot/internal/transport/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Ask questions interactively in the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx, flushLog := setupLogger(ctx)
		defer flushLog()

		appCfg, store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		answerer, err := newAnswerer(config.NewQAConfig(ctx), render.FormatText, store, metrics.NewCollector())
		if err != nil {
			return err
		}

		rl, err := cli.NewReadLine(answerer, command.New(command.NewCommands(store)), appCfg.GetRuntimePath())
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
