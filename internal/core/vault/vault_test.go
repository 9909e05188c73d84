package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedVault(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	return root
}

func TestVault_List(t *testing.T) {
	root := seedVault(t,
		"inbox/a.md",
		"inbox/b.txt",
		"projects/deep/c.md",
		"top.md",
		".obsidian/cache.md",
	)

	v := New(root, []string{"**/*.md"}, nil)
	notes, err := v.List()
	require.NoError(t, err)

	assert.Equal(t, []string{"inbox/a.md", "projects/deep/c.md", "top.md"}, notes)
}

func TestVault_List_Excludes(t *testing.T) {
	root := seedVault(t, "inbox/a.md", "archive/old.md")

	v := New(root, []string{"**/*.md"}, []string{"archive/**"})
	notes, err := v.List()
	require.NoError(t, err)

	assert.Equal(t, []string{"inbox/a.md"}, notes)
}

func TestVault_Contains(t *testing.T) {
	root := seedVault(t)
	v := New(root, []string{"**/*.md"}, []string{"archive/**"})

	assert.True(t, v.Contains("inbox/a.md"))
	assert.True(t, v.Contains(filepath.Join(root, "inbox/a.md")))
	assert.False(t, v.Contains("inbox/a.txt"))
	assert.False(t, v.Contains("archive/a.md"))
	assert.False(t, v.Contains("/somewhere/else/a.md"))
}

func TestVault_Abs(t *testing.T) {
	v := New("/vault", []string{"**/*.md"}, nil)
	assert.Equal(t, filepath.FromSlash("/vault/inbox/a.md"), v.Abs("inbox/a.md"))
}
