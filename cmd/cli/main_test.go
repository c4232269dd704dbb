package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/plangridgo/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_CheckFindsErrors(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The complete keyword in the id position invalidates the document.
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.plan")
	err := os.WriteFile(filePath, []byte("task complete build {}\n"), 0600)
	require.NoError(t, err, "failed to set up test file")

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	runErr := run(out, errOut, []string{"check", filePath})

	// --- Assert ---
	require.Error(t, runErr)
	require.Equal(t, cli.ExitFailure, cli.ExitCode(runErr))
	require.Contains(t, out.String(), "invalid-complete-keyword-position")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"--help"})

	// --- Assert ---
	require.NoError(t, err, "help is not an error")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Equal(t, cli.ExitUsage, cli.ExitCode(err))
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
