package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/recruiter-copilot/internal/types"
	"github.com/spf13/cobra"
)

var jobPostingCmd = &cobra.Command{
	Use:   "job-posting",
	Short: "Draft a Markdown job posting",
	Long: `Draft a Markdown job posting with four sections: Job Title, Mission Summary,
Responsibilities and Minimum Requirements. When the model fails a fixed fallback
message is printed instead.`,
	RunE: runJobPosting,
}

var (
	jpTitle      string
	jpDepartment string
	jpSeniority  string
	jpSkills     string
	jpTone       string
	jpJSON       bool
	jpOut        string
)

func init() {
	jobPostingCmd.Flags().StringVar(&jpTitle, "title", "", "Job title (required)")
	jobPostingCmd.Flags().StringVar(&jpDepartment, "department", "", "Department (required)")
	jobPostingCmd.Flags().StringVar(&jpSeniority, "seniority", "", "Seniority level (required)")
	jobPostingCmd.Flags().StringVar(&jpSkills, "skills", "", "Key skills, comma-separated (required)")
	jobPostingCmd.Flags().StringVar(&jpTone, "tone", "", "Writing tone (default from config: Professional and inspiring)")
	jobPostingCmd.Flags().BoolVar(&jpJSON, "json", false, "Print the result as JSON")
	jobPostingCmd.Flags().StringVarP(&jpOut, "out", "o", "", "Also write the JSON result to this file")

	rootCmd.AddCommand(jobPostingCmd)
}

func runJobPosting(cmd *cobra.Command, _ []string) error {
	cfg, err := globals.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	req := types.JobPostingRequest{
		Title:      jpTitle,
		Department: jpDepartment,
		Seniority:  jpSeniority,
		Skills:     jpSkills,
		Tone:       jpTone,
	}
	if strings.TrimSpace(req.Tone) == "" {
		req.Tone = cfg.DefaultTone
	}
	if err := req.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	gw, client, err := newGateway(ctx, cfg, globals.tier)
	if err != nil {
		return err
	}
	defer client.Close()

	text, fallback := gw.ComposeJobPostingText(ctx, req)
	result := types.TextResult{Text: text, Fallback: fallback}

	if err := emitJSON(os.Stdout, jpOut, result, jpJSON); err != nil {
		return err
	}
	if !jpJSON {
		_, _ = fmt.Fprintln(os.Stdout, text)
	}
	return nil
}
