package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/service/installer"
	"github.com/sandevgo/sejarahbot/internal/service/ui"
	"github.com/sandevgo/sejarahbot/pkg/env"
	"github.com/sandevgo/sejarahbot/pkg/log"
	"github.com/spf13/cobra"
)

var (
	initForce       bool
	initInteractive bool
	initDriver      string
	initHTTP        string
	initTgToken     string
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Create the runtime directory and its .env file",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", envPath)
		}

		secret, err := newSecret()
		if err != nil {
			return err
		}

		state := stateFromFlags()
		if initInteractive {
			if state, err = installer.RunWizard(); err != nil {
				return err
			}
		}

		content, err := env.MarshalEnv(
			&state.App,
			&config.AuthConfig{Secret: secret},
			&state.HTTP,
			&state.Telegram,
		)
		if err != nil {
			return fmt.Errorf("failed to marshal env: %w", err)
		}

		if err := os.MkdirAll(runtimePath, 0o700); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}
		if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", envPath, err)
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		fmt.Println(ui.SuccessStyle.Render("Setup complete! You can now run 'sejarah seed <file>' and 'sejarah start'."))
		return nil
	},
}

func stateFromFlags() *installer.InstallState {
	state := installer.NewInstallState()
	state.App.StorageDriver = initDriver
	state.App.EnableTelegram = initTgToken != ""
	state.HTTP.Addr = initHTTP
	state.Telegram.Token = initTgToken
	return state
}

// newSecret returns a random HS256 signing key.
func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func init() {
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "answer the setup questions in a wizard")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing .env")
	initCmd.Flags().StringVar(&initDriver, "storage", config.StorageSQLite, "storage driver: sqlite, postgres or memory")
	initCmd.Flags().StringVar(&initHTTP, "addr", ":8080", "HTTP listen address")
	initCmd.Flags().StringVar(&initTgToken, "telegram-token", "", "enable the Telegram bot with this token")
	rootCmd.AddCommand(initCmd)
}
