package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/service"
)

var (
	riskUserID string
	riskDate   string
	riskStore  bool
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Compute a user's burnout risk and print it as JSON",
	RunE:  runRisk,
}

func init() {
	riskCmd.Flags().StringVarP(&riskUserID, "user", "u", "", "User ID (required)")
	riskCmd.Flags().StringVar(&riskDate, "date", "", "As-of date, YYYY-MM-DD (default today)")
	riskCmd.Flags().BoolVar(&riskStore, "store", false, "Append the assessment to the user's history")
	_ = riskCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(riskCmd)
}

func runRisk(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	asOf, err := service.ParseAsOf(riskDate, time.Now())
	if err != nil {
		return err
	}

	_, logger, store, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer store.Close()

	var a *internal.BurnoutRiskAssessment
	if riskStore {
		a, err = service.CalculateAndStoreRisk(ctx, store, riskUserID, asOf)
	} else {
		a, err = service.ComputeRisk(ctx, store, riskUserID, asOf)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}
