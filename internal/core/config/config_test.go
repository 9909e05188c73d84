package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/notes")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/notes", cfg.Vault.Dir)
	assert.Equal(t, DateSourceModifiedTime, cfg.Freshness.DateSource)
	assert.Equal(t, TriggerOnOpen, cfg.Freshness.UpdateTrigger)
	assert.Equal(t, 180, cfg.Freshness.MinDaysToWarn)
	assert.Equal(t, []string{"**/*.md"}, cfg.Vault.Include)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
freshness:
  date_source: front-matter
  front_matter_key: modified
  min_days_to_warn: 30
  warn_on_missing_date: true
  update_trigger: on-open-or-save
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, DateSourceFrontMatter, cfg.Freshness.DateSource)
	assert.Equal(t, "modified", cfg.Freshness.FrontMatterKey)
	assert.Equal(t, 30, cfg.Freshness.MinDaysToWarn)
	assert.True(t, cfg.Freshness.WarnOnMissingDate)
	assert.Equal(t, TriggerOnOpenOrSave, cfg.Freshness.UpdateTrigger)
	// Untouched fields keep defaults.
	assert.Equal(t, "Last updated ${numberOfDays} days ago (${date})", cfg.Freshness.MessageTemplate)
	assert.Equal(t, dir, cfg.Vault.Dir)
}

func TestLoad_ConfigVaultDirWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("vault:\n  dir: /elsewhere\n"), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", cfg.Vault.Dir)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestSave_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Vault.Dir = dir
	cfg.Freshness.MinDaysToWarn = 7
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path, "ignored")
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Freshness.MinDaysToWarn)
	assert.Equal(t, dir, loaded.Vault.Dir)
}
