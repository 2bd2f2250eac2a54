// Package main is the burnout tracking API server and its operator commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/config"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:           "pacificapp",
	Short:         "Burnout risk tracking API",
	Long:          "Tracks stress, sleep and work activity, computes burnout risk and serves recommendations over HTTP.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads config, logger and store for a command. The caller owns
// closing the store and syncing the logger.
func bootstrap(ctx context.Context) (*config.Config, *internal.ZapLogger, storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to init storage: %w", err)
	}
	return cfg, logger, store, nil
}
