package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/stale/internal/core/config"
	"github.com/colonyops/stale/internal/core/vault"
	"github.com/colonyops/stale/internal/freshness"
)

func checkFixture(t *testing.T, notes map[string]string) (*CheckCmd, *vault.Vault) {
	t.Helper()

	root := t.TempDir()
	for rel, content := range notes {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.DefaultConfig()
	cfg.Vault.Dir = root
	cfg.Freshness.DateSource = config.DateSourceFrontMatter

	cmd := NewCheckCmd(&Flags{Config: &cfg})
	return cmd, vault.New(root, cfg.Vault.Include, cfg.Vault.Exclude)
}

func TestCheckNote_StaleNote(t *testing.T) {
	cmd, v := checkFixture(t, map[string]string{
		"old.md": "---\nupdated: 2020-01-01\n---\nbody\n",
	})

	resolver, err := freshness.NewResolver(cmd.flags.Config.Freshness)
	require.NoError(t, err)

	res := cmd.checkNote(context.Background(), resolver, v, "old.md", time.Now())

	assert.True(t, res.Stale)
	assert.Equal(t, "2020-01-01", res.Date)
	assert.Contains(t, res.Message, "days ago (2020-01-01)")
	assert.Empty(t, res.Error)
}

func TestCheckNote_FreshNote(t *testing.T) {
	cmd, v := checkFixture(t, map[string]string{
		"new.md": "---\nupdated: " + time.Now().Format("2006-01-02") + "\n---\nbody\n",
	})

	resolver, err := freshness.NewResolver(cmd.flags.Config.Freshness)
	require.NoError(t, err)

	res := cmd.checkNote(context.Background(), resolver, v, "new.md", time.Now())

	assert.False(t, res.Stale)
	assert.Equal(t, 0, res.Days)
}

func TestCheckNote_MissingNoteReportsError(t *testing.T) {
	cmd, v := checkFixture(t, nil)

	resolver, err := freshness.NewResolver(cmd.flags.Config.Freshness)
	require.NoError(t, err)

	res := cmd.checkNote(context.Background(), resolver, v, "ghost.md", time.Now())

	assert.False(t, res.Stale)
	assert.NotEmpty(t, res.Error)
}

func TestCheckNote_MissingDateWithWarnEnabled(t *testing.T) {
	cmd, v := checkFixture(t, map[string]string{"plain.md": "no front matter\n"})
	cmd.flags.Config.Freshness.WarnOnMissingDate = true

	resolver, err := freshness.NewResolver(cmd.flags.Config.Freshness)
	require.NoError(t, err)

	res := cmd.checkNote(context.Background(), resolver, v, "plain.md", time.Now())

	assert.True(t, res.Stale)
	assert.Equal(t, freshness.MissingDateMessage, res.Message)
	assert.Empty(t, res.Date)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "short", limit: 80, want: "short"},
		{in: "exactly-ten", limit: 11, want: "exactly-ten"},
		{in: "this line is too long", limit: 10, want: "this li..."},
		{in: "tiny limit", limit: 3, want: "tiny limit"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.limit))
	}
}

func TestTruncate_StyledLine(t *testing.T) {
	line := "\x1b[38;5;212mnotes/projects/2024/roadmap.md\x1b[0m: last updated 900 days ago"

	got := truncate(line, 20)

	assert.Equal(t, 20, ansi.StringWidth(got))
	assert.Equal(t, "notes/projects/20...", ansi.Strip(got))
	assert.Contains(t, got, "\x1b[38;5;212m")
}

func TestCheckResult_JSONKeepsZeroDays(t *testing.T) {
	res := checkResult{Path: "today.md", Stale: false, Days: 0, Date: "2024-07-01"}

	out, err := json.Marshal(res)
	require.NoError(t, err)

	assert.Contains(t, string(out), `"days":0`)
}
