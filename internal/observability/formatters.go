// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/recruiter-copilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for result summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// writeList appends up to maxItemsToShow bullet items under a heading.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintResumeMatch outputs a human-readable summary of a resume comparison.
func (p *Printer) PrintResumeMatch(result *types.ResumeMatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Match Score: %d/100\n", result.MatchScore))
	sb.WriteString("\n")

	writeList(&sb, "Strengths", result.Strengths)
	writeList(&sb, "Gaps", result.Gaps)

	if result.Summary != "" {
		sb.WriteString("Summary:\n")
		sb.WriteString(result.Summary)
	}

	p.printBox("RESUME MATCH", strings.TrimRight(sb.String(), "\n"))
}

// PrintMarketAnalysis outputs a human-readable summary of a market estimate.
func (p *Printer) PrintMarketAnalysis(result *types.MarketAnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Salary:   %s\n", result.SalaryRange))
	sb.WriteString(fmt.Sprintf("Currency: %s\n", result.Currency))
	sb.WriteString("\n")

	if result.MarketOutlook != "" {
		sb.WriteString("Outlook:\n")
		sb.WriteString(result.MarketOutlook)
		sb.WriteString("\n\n")
	}

	if len(result.RareSkills) > 0 {
		sb.WriteString("Rare Skills:\n")
		for i, skill := range result.RareSkills {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, skill.Name))
			if skill.Description != "" {
				sb.WriteString(fmt.Sprintf("     %s\n", skill.Description))
			}
		}
	}

	p.printBox("MARKET ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}
