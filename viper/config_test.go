package viper_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/casescout"
	csviper "github.com/fwojciec/casescout/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := csviper.Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".casescout", "casescout.db"), cfg.DBPath)
	assert.Equal(t, casescout.DefaultKeywords, cfg.Discovery.Keywords)
	assert.Equal(t, 5, cfg.Discovery.Quota)
	assert.Equal(t, "English", cfg.Discovery.Language)
	assert.False(t, cfg.Discovery.SkipFirst)
	assert.False(t, cfg.Discovery.RespectRobots)
	assert.Equal(t, "heuristic", cfg.Extraction.Engine)
	assert.Equal(t, 1, cfg.Extraction.Concurrency)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.InDelta(t, 1.0, cfg.Fetch.RatePerSecond, 0.0001)
	assert.Equal(t, "openai", cfg.Summary.Provider)
	assert.Equal(t, 2000, cfg.Summary.MaxTokens)
	assert.Equal(t, casescout.DefaultPrompt, cfg.Summary.Prompt)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
db_path: /tmp/scout.db
discovery:
  keywords: [Customers, " case-studies "]
  quota: 3
  language: ""
  skip_first: true
extraction:
  engine: trafilatura
  concurrency: 4
  markdown: true
fetch:
  timeout: 30s
  jitter: 2s
  retries: 2
summary:
  provider: anthropic
  model: claude-3-5-haiku-latest
`)

	cfg, err := csviper.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/scout.db", cfg.DBPath)
	assert.Equal(t, casescout.KeywordSet{"customers", "case-studies"}, cfg.Discovery.Keywords)
	assert.Equal(t, 3, cfg.Discovery.Quota)
	assert.Empty(t, cfg.Discovery.Language)
	assert.True(t, cfg.Discovery.SkipFirst)
	assert.Equal(t, "trafilatura", cfg.Extraction.Engine)
	assert.Equal(t, 4, cfg.Extraction.Concurrency)
	assert.True(t, cfg.Extraction.Markdown)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Fetch.Jitter)
	assert.Equal(t, 2, cfg.Fetch.Retries)
	assert.Equal(t, "anthropic", cfg.Summary.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Summary.Model)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CASESCOUT_DISCOVERY_QUOTA", "7")
	t.Setenv("CASESCOUT_SUMMARY_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("OPENAI_API_KEY", "sk-key")

	cfg, err := csviper.Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Discovery.Quota)
	assert.Equal(t, "gemini", cfg.Summary.Provider)
	assert.Equal(t, "gm-key", cfg.Summary.APIKey())
	assert.Equal(t, "sk-key", cfg.Summary.OpenAIAPIKey)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CASESCOUT_EXTRACTION_ENGINE", "readability")

	path := writeConfig(t, "extraction:\n  engine: trafilatura\n")

	cfg, err := csviper.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "readability", cfg.Extraction.Engine)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := csviper.Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Equal(t, casescout.ENOTFOUND, casescout.ErrorCode(err))
}

func TestLoad_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"quota too large", "discovery:\n  quota: 21\n"},
		{"quota zero", "discovery:\n  quota: 0\n"},
		{"unknown engine", "extraction:\n  engine: magic\n"},
		{"unknown provider", "summary:\n  provider: llama\n"},
		{"zero concurrency", "extraction:\n  concurrency: 0\n"},
		{"malformed yaml", "discovery: [\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())

			_, err := csviper.Load(writeConfig(t, tc.content))

			require.Error(t, err)
			assert.Equal(t, casescout.EINVALID, casescout.ErrorCode(err))
		})
	}
}
