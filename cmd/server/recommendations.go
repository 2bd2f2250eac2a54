package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/service"
)

var assignUserID string

var recommendationsCmd = &cobra.Command{
	Use:   "recommendations",
	Short: "Manage the recommendation catalog",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default recommendation catalog if it is empty",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, logger, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer store.Close()

		n, err := service.SeedRecommendationCatalog(ctx, store)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Catalog already populated, nothing to do")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %d recommendations\n", n)
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Replace a user's recommendations with the whole catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		_, logger, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer store.Close()

		n, err := service.AssignAllRecommendations(ctx, store, assignUserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d recommendations to %s\n", n, assignUserID)
		return nil
	},
}

func init() {
	assignCmd.Flags().StringVarP(&assignUserID, "user", "u", "", "User ID (required)")
	_ = assignCmd.MarkFlagRequired("user")

	recommendationsCmd.AddCommand(seedCmd, assignCmd)
	rootCmd.AddCommand(recommendationsCmd)
}
