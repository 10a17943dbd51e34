package main

import (
	"context"
	"os"

	"github.com/jonathan/recruiter-copilot/internal/observability"
	"github.com/jonathan/recruiter-copilot/internal/types"
	"github.com/spf13/cobra"
)

var marketAnalysisCmd = &cobra.Command{
	Use:   "market-analysis",
	Short: "Estimate salary range and rare skills for a role",
	Long: `Estimate the average monthly salary range for a role in the configured market and
currency, with a market outlook and three rare skills that set candidates apart.`,
	RunE: runMarketAnalysis,
}

var (
	maTitle     string
	maSeniority string
	maJSON      bool
	maOut       string
)

func init() {
	marketAnalysisCmd.Flags().StringVar(&maTitle, "title", "", "Job title (required)")
	marketAnalysisCmd.Flags().StringVar(&maSeniority, "seniority", "", "Seniority level (required)")
	marketAnalysisCmd.Flags().BoolVar(&maJSON, "json", false, "Print the result as JSON")
	marketAnalysisCmd.Flags().StringVarP(&maOut, "out", "o", "", "Also write the JSON result to this file")

	rootCmd.AddCommand(marketAnalysisCmd)
}

func runMarketAnalysis(cmd *cobra.Command, _ []string) error {
	cfg, err := globals.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	req := types.MarketAnalysisRequest{Title: maTitle, Seniority: maSeniority}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	gw, client, err := newGateway(ctx, cfg, globals.tier)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := gw.ComposeMarketAnalysis(ctx, req.Title, req.Seniority)
	if err != nil {
		return err
	}

	if err := emitJSON(os.Stdout, maOut, result, maJSON); err != nil {
		return err
	}
	if !maJSON {
		observability.NewPrinter(os.Stdout).PrintMarketAnalysis(result)
	}
	return nil
}
