package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sejarahbot/internal/config"
	"github.com/sandevgo/sejarahbot/internal/core"
	"github.com/sandevgo/sejarahbot/internal/providers/auth"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:          "token <email>",
	Short:        "Issue a session token for a verified account",
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

		token, err := issueToken(ctx, config.NewAuthConfig(ctx), store, args[0])
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func issueToken(ctx context.Context, cfg *config.AuthConfig, accounts core.AccountRepository, email string) (string, error) {
	authority, err := auth.NewAuthority(cfg)
	if err != nil {
		return "", err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	a, err := accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to find account %q: %w", email, err)
	}
	if !a.Verified {
		return "", fmt.Errorf("account %q: %w", email, core.ErrUnverified)
	}
	return authority.IssueToken(a.Identity())
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
