package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeadvisor/internal/llm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "codeadvisor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GOOGLE_API_KEY", "CODEADVISOR_PROVIDER"} {
		t.Setenv(v, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, llm.KindOpenAI, cfg.DefaultProvider)
	assert.Len(t, cfg.Providers, 3)
	assert.Equal(t, 100, cfg.Analysis.MaxFiles)
	assert.Contains(t, cfg.Analysis.ExcludedDirs, "__pycache__")
}

func TestLoadFile(t *testing.T) {
	clearProviderEnv(t)
	path := writeConfig(t, `
default_provider: anthropic
providers:
  anthropic:
    api_key: sk-ant-test
    model: claude-3-haiku-20240307
analysis:
  max_files: 25
  excluded_dirs: [.git, dist]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.DefaultProvider)
	assert.Equal(t, 25, cfg.Analysis.MaxFiles)
	assert.Equal(t, []string{".git", "dist"}, cfg.Analysis.ExcludedDirs)
	assert.Equal(t, path, cfg.Path())

	pc, err := cfg.ProviderConfig("")
	require.NoError(t, err)
	assert.Equal(t, llm.KindAnthropic, pc.Kind)
	assert.Equal(t, "sk-ant-test", pc.APIKey)
	assert.Equal(t, "claude-3-haiku-20240307", pc.Model)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "providers: [not: a: map")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load("/nonexistent/codeadvisor.yaml")
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	clearProviderEnv(t)
	path := writeConfig(t, `
providers:
  openai:
    api_key: from-file
`)
	t.Setenv("OPENAI_API_KEY", "from-env")
	t.Setenv("CODEADVISOR_PROVIDER", "openai")

	cfg, err := Load(path)
	require.NoError(t, err)

	pc, err := cfg.ProviderConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", pc.APIKey)
}

func TestProviderConfigMissingKey(t *testing.T) {
	clearProviderEnv(t)
	cfg := Default()

	_, err := cfg.ProviderConfig("google")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google")
}

func TestConfiguredProvidersSorted(t *testing.T) {
	cfg := Default()
	cfg.Providers["openai"] = Provider{APIKey: "a"}
	cfg.Providers["google"] = Provider{APIKey: "b"}

	assert.Equal(t, []string{"google", "openai"}, cfg.ConfiguredProviders())
}

func TestSetProviderPersists(t *testing.T) {
	clearProviderEnv(t)
	path := filepath.Join(t.TempDir(), "codeadvisor.yaml")

	created, err := Init(path)
	require.NoError(t, err)
	assert.Equal(t, path, created)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SetProvider("google", "g-key", "gemini-1.5-pro"))

	reloaded, err := Load(path)
	require.NoError(t, err)
	pc, err := reloaded.ProviderConfig("google")
	require.NoError(t, err)
	assert.Equal(t, "g-key", pc.APIKey)
	assert.Equal(t, "gemini-1.5-pro", pc.Model)
}

func TestInitRefusesExisting(t *testing.T) {
	path := writeConfig(t, "default_provider: openai\n")
	_, err := Init(path)
	require.Error(t, err)
}
