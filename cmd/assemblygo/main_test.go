package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ParseErrorIsReported(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		group "handlers" {
			value "x" {
		// Missing closing braces here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")

	var stdout, stderr bytes.Buffer

	// --- Act ---
	runErr := run(context.Background(), &stdout, &stderr, []string{"tree", "-f", filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), &stdout, &stderr, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, stdout.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_Lookup(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	filePath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`value "x" { value = 1 }`), 0600))

	err := run(context.Background(), &stdout, &stderr, []string{"lookup", "-f", filePath, "x"})
	require.NoError(t, err)
	require.Equal(t, "x = 1\n", stdout.String())
}
