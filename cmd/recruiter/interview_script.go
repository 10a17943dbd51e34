package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/recruiter-copilot/internal/types"
	"github.com/spf13/cobra"
)

var interviewScriptCmd = &cobra.Command{
	Use:   "interview-script",
	Short: "Draft an interview script for a role",
	Long:  "Draft 10 technical questions with expected answers and 5 behavioral STAR questions for a role.",
	RunE:  runInterviewScript,
}

var (
	isTitle  string
	isSkills string
	isJSON   bool
	isOut    string
)

func init() {
	interviewScriptCmd.Flags().StringVar(&isTitle, "title", "", "Job title (required)")
	interviewScriptCmd.Flags().StringVar(&isSkills, "skills", "", "Skills to focus on, comma-separated")
	interviewScriptCmd.Flags().BoolVar(&isJSON, "json", false, "Print the result as JSON")
	interviewScriptCmd.Flags().StringVarP(&isOut, "out", "o", "", "Also write the JSON result to this file")

	rootCmd.AddCommand(interviewScriptCmd)
}

func runInterviewScript(cmd *cobra.Command, _ []string) error {
	cfg, err := globals.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	req := types.InterviewScriptRequest{Title: isTitle, Skills: isSkills}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	gw, client, err := newGateway(ctx, cfg, globals.tier)
	if err != nil {
		return err
	}
	defer client.Close()

	text, fallback := gw.ComposeInterviewScriptText(ctx, req.Title, req.Skills)
	result := types.TextResult{Text: text, Fallback: fallback}

	if err := emitJSON(os.Stdout, isOut, result, isJSON); err != nil {
		return err
	}
	if !isJSON {
		_, _ = fmt.Fprintln(os.Stdout, text)
	}
	return nil
}
