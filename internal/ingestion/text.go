// Package ingestion turns resume and job description documents into clean prompt text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace  = regexp.MustCompile(`\s+`)
	excessBlank = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving headings, bullets and indentation
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		return strings.Repeat(" ", indent) + trimmed
	}

	content := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}
