package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the recruiter binary for testing
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "recruiter")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/recruiter ./cmd/recruiter'", binaryPath)
	}

	return binaryPath
}
