package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg.Limits.MaxTokens)
	assert.Equal(t, 50000, *cfg.Limits.MaxTokens)
	require.NotNil(t, cfg.Limits.MaxRequests)
	assert.Equal(t, 100, *cfg.Limits.MaxRequests)
	require.NotNil(t, cfg.Limits.MaxUSD)
	assert.InDelta(t, 20.0, *cfg.Limits.MaxUSD, 1e-9)

	assert.Equal(t, "gpt-4o", cfg.Audit.LLMModel)
	assert.InDelta(t, 0.1, float64(cfg.Audit.Temperature), 1e-6)
	assert.True(t, cfg.Audit.EnableLLMAudit)

	assert.Contains(t, cfg.Scan.ExcludePatterns, "node_modules/**")
	assert.Equal(t, 10, cfg.Scan.MaxFileSizeMB)
	assert.False(t, cfg.Scan.IncludeHidden)
}

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".aiscan.yml")
	content := `logger:
  level: debug
limits:
  max_tokens: 1234
audit:
  llm_model: claude-3-haiku
  enable_llm_audit: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	require.NotNil(t, cfg.Limits.MaxTokens)
	assert.Equal(t, 1234, *cfg.Limits.MaxTokens)
	assert.Equal(t, "claude-3-haiku", cfg.Audit.LLMModel)
	assert.False(t, cfg.Audit.EnableLLMAudit)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("limits: [not a map"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "saved.yml")

	original := DefaultConfig()
	original.Audit.LLMModel = "claude-3-sonnet"
	require.NoError(t, original.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "claude-3-sonnet", loaded.Audit.LLMModel)
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, InitConfig(dir))
	_, err := os.Stat(filepath.Join(dir, DefaultConfigName))
	require.NoError(t, err)

	// A second init must not overwrite the existing file.
	require.Error(t, InitConfig(dir))
}

func TestInitConfigUpdatesGitignore(t *testing.T) {
	dir := t.TempDir()
	gitignore := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignore, []byte("*.log\n"), 0644))

	require.NoError(t, InitConfig(dir))

	data, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ai_inventory.json")
	assert.Contains(t, string(data), "ai_audit_report.json")

	// Re-running init elsewhere never duplicates the entries.
	before := string(data)
	require.NoError(t, os.Remove(filepath.Join(dir, DefaultConfigName)))
	require.NoError(t, InitConfig(dir))
	after, err := os.ReadFile(gitignore)
	require.NoError(t, err)
	assert.Equal(t, before, string(after))
}
