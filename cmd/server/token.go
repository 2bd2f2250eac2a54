package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/auth"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/config"
)

var (
	tokenUserID string
	tokenTTL    time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for AUTH_PROVIDER=jwt",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cfg.AuthType != "jwt" {
			return errors.New("token requires AUTH_PROVIDER=jwt")
		}
		tok, err := auth.NewJWTAuthProvider(cfg.JWTSecret, internal.NopLogger()).IssueToken(tokenUserID, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUserID, "user", "u", "", "User ID (required)")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(tokenCmd)
}
