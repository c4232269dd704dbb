package testutil

import (
	"testing"

	"github.com/specialistvlad/plangridgo/internal/cst"
	"github.com/specialistvlad/plangridgo/internal/hcl_adapter"
	"github.com/stretchr/testify/require"
)

// Parse parses src as a document named "main.plan" and fails the test on
// syntax errors.
func Parse(t *testing.T, src string) cst.ParseResult {
	t.Helper()
	return ParseNamed(t, "main.plan", src)
}

// ParseNamed is Parse with an explicit document name.
func ParseNamed(t *testing.T, name, src string) cst.ParseResult {
	t.Helper()
	res := hcl_adapter.NewParser().Parse(cst.Source{Name: name, Text: []byte(src)})
	require.True(t, res.Success, "unexpected parse errors: %v", res.Errors)
	return res
}
