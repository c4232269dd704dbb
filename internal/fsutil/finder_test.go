package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/plangridgo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPaths(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a.plan":        "",
		"nested/b.hcl":  "",
		"nested/c.txt":  "",
		"notes.md":      "",
		"z/deep/d.plan": "",
	})

	files, err := ExpandPaths([]string{dir, filepath.Join(dir, "notes.md"), filepath.Join(dir, "a.plan")}, ".plan", ".hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.plan"),
		filepath.Join(dir, "nested", "b.hcl"),
		filepath.Join(dir, "notes.md"),
		filepath.Join(dir, "z", "deep", "d.plan"),
	}, files)
}

func TestExpandPaths_MissingPath(t *testing.T) {
	_, err := ExpandPaths([]string{filepath.Join(t.TempDir(), "nope")}, ".plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to stat")
}
