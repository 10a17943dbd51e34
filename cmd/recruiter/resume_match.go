package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/recruiter-copilot/internal/observability"
	"github.com/jonathan/recruiter-copilot/internal/types"
	"github.com/spf13/cobra"
)

var resumeMatchCmd = &cobra.Command{
	Use:   "resume-match",
	Short: "Score a resume against a job description",
	Long: `Compare a resume with a job description and report a 0-100 match score, strengths,
gaps and a short summary. Resumes may be .pdf, .docx, .txt or .md files.`,
	RunE: runResumeMatch,
}

var (
	rmResume     string
	rmResumeText string
	rmJob        string
	rmJobText    string
	rmJSON       bool
	rmOut        string
)

func init() {
	resumeMatchCmd.Flags().StringVarP(&rmResume, "resume", "r", "", "Path to resume file (.pdf, .docx, .txt, .md)")
	resumeMatchCmd.Flags().StringVar(&rmResumeText, "resume-text", "", "Resume text (instead of --resume)")
	resumeMatchCmd.Flags().StringVarP(&rmJob, "job", "j", "", "Path to job description file")
	resumeMatchCmd.Flags().StringVar(&rmJobText, "job-description", "", "Job description text (instead of --job)")
	resumeMatchCmd.Flags().BoolVar(&rmJSON, "json", false, "Print the result as JSON")
	resumeMatchCmd.Flags().StringVarP(&rmOut, "out", "o", "", "Also write the JSON result to this file")

	resumeMatchCmd.MarkFlagsMutuallyExclusive("resume", "resume-text")
	resumeMatchCmd.MarkFlagsMutuallyExclusive("job", "job-description")

	rootCmd.AddCommand(resumeMatchCmd)
}

func runResumeMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := globals.resolve(cmd.Flags())
	if err != nil {
		return err
	}

	ctx := context.Background()

	resumeText, err := textInput(ctx, rmResumeText, rmResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	jobDescription, err := textInput(ctx, rmJobText, rmJob)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	req := types.ResumeMatchRequest{JobDescription: jobDescription, ResumeText: resumeText}
	if err := req.Validate(); err != nil {
		return err
	}

	gw, client, err := newGateway(ctx, cfg, globals.tier)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := gw.ComposeResumeMatch(ctx, req.ResumeText, req.JobDescription)
	if err != nil {
		return err
	}

	if err := emitJSON(os.Stdout, rmOut, result, rmJSON); err != nil {
		return err
	}
	if !rmJSON {
		observability.NewPrinter(os.Stdout).PrintResumeMatch(result)
	}
	return nil
}
