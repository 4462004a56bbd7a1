package main

import (
	"fmt"

	"github.com/sandevgo/sejarahbot/internal/service/catalog"
	"github.com/sandevgo/sejarahbot/internal/service/ui"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:          "seed <file>",
	Short:        "Load events and figures from a YAML or JSON file",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		_, store, closeStore, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		report, err := catalog.NewService(store).SeedFromFile(ctx, args[0])
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().
			Int("events", report.EventsAdded).
			Int("figures", report.FiguresAdded).
			Int("skipped", report.Skipped).
			Str("file", args[0]).
			Msg("seed complete")
		fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Added %d events and %d figures, skipped %d duplicates.",
			report.EventsAdded, report.FiguresAdded, report.Skipped)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
