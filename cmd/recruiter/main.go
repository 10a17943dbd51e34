// Package main provides the entry point for the recruiter CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recruiter",
	Short: "Recruiting assistant backed by Gemini",
	Long: `Recruiter drafts job postings and interview scripts, scores resumes against job
descriptions, and estimates salary ranges with rare skills for a role.

Configuration can be loaded from a JSON file using --config. Command-line flags override
config file values; GEMINI_API_KEY (or API_KEY) supplies the key when neither sets one.`,
	SilenceUsage: true,
}

var globals globalOptions

func init() {
	globals.register(rootCmd.PersistentFlags())
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
