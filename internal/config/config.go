// Package config loads, persists, and resolves tool configuration from
// YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"codeadvisor/internal/llm"
	"codeadvisor/internal/syntax"
)

// ConfigFileName is the per-project configuration file.
const ConfigFileName = "codeadvisor.yaml"

// Provider holds the credential and model for one provider kind.
type Provider struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model,omitempty"`
}

// Analysis configures the syntax scan.
type Analysis struct {
	MaxFiles     int      `yaml:"max_files"`
	ExcludedDirs []string `yaml:"excluded_dirs"`
}

// Config is the full tool configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Analysis        Analysis            `yaml:"analysis"`

	path string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DefaultProvider: llm.KindOpenAI,
		Providers: map[string]Provider{
			llm.KindOpenAI:    {Model: "gpt-3.5-turbo"},
			llm.KindAnthropic: {Model: "claude-3-haiku-20240307"},
			llm.KindGoogle:    {Model: "gemini-1.5-flash"},
		},
		Analysis: Analysis{
			MaxFiles:     100,
			ExcludedDirs: syntax.DefaultExcludedDirs,
		},
	}
}

// Load reads configuration from customPath when given, otherwise from
// the first default location that exists, otherwise the built-in
// defaults. A .env file in the working directory is honored, and
// environment variables override file values last.
func Load(customPath string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	var cfg *Config
	switch {
	case customPath != "":
		loaded, err := loadFile(customPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			loaded, err := loadFile(p)
			if err != nil {
				return nil, err
			}
			cfg = loaded
			break
		}
	}
	if cfg == nil {
		cfg = Default()
	}

	cfg.applyEnv()
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid YAML in %s: %w", path, err)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]Provider)
	}
	cfg.path = path
	return cfg, nil
}

// searchPaths lists the default configuration locations in order of
// preference: working directory, dot directory in home, XDG config dir.
func searchPaths() []string {
	paths := []string{ConfigFileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".codeadvisor", "config.yaml"),
			filepath.Join(home, ".config", "codeadvisor", "config.yaml"),
		)
	}
	return paths
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	keys := map[string]string{
		llm.KindOpenAI:    "OPENAI_API_KEY",
		llm.KindAnthropic: "ANTHROPIC_API_KEY",
		llm.KindGoogle:    "GOOGLE_API_KEY",
	}
	for kind, envVar := range keys {
		if v := os.Getenv(envVar); v != "" {
			p := c.Providers[kind]
			p.APIKey = v
			c.Providers[kind] = p
		}
	}
	if v := os.Getenv("CODEADVISOR_PROVIDER"); v != "" {
		c.DefaultProvider = v
	}
}

// ProviderConfig resolves the llm configuration for the given kind, or
// the default provider when kind is empty.
func (c *Config) ProviderConfig(kind string) (llm.Config, error) {
	if kind == "" {
		kind = c.DefaultProvider
	}
	if kind == "" {
		kind = llm.KindOpenAI
	}

	p, ok := c.Providers[kind]
	if !ok || p.APIKey == "" {
		return llm.Config{}, fmt.Errorf("config: no API key configured for provider %q; set it in the config file or environment", kind)
	}
	return llm.Config{Kind: kind, APIKey: p.APIKey, Model: p.Model}, nil
}

// ConfiguredProviders lists provider kinds with an API key set, sorted.
func (c *Config) ConfiguredProviders() []string {
	var kinds []string
	for kind, p := range c.Providers {
		if p.APIKey != "" {
			kinds = append(kinds, kind)
		}
	}
	sort.Strings(kinds)
	return kinds
}

// SetProvider stores a credential (and optional model) for a provider
// kind and persists the configuration.
func (c *Config) SetProvider(kind, apiKey, model string) error {
	if c.Providers == nil {
		c.Providers = make(map[string]Provider)
	}
	p := c.Providers[kind]
	p.APIKey = apiKey
	if model != "" {
		p.Model = model
	}
	c.Providers[kind] = p
	return c.Save()
}

// Save writes the configuration to its file, creating it at the
// per-project default location when it was never loaded from disk.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = ConfigFileName
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("config.Save: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// Init writes a default configuration file at path (or the per-project
// default) and returns its location. Fails if the file already exists.
func Init(path string) (string, error) {
	if path == "" {
		path = ConfigFileName
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config.Init: %s already exists", path)
	}
	cfg := Default()
	cfg.path = path
	if err := cfg.Save(); err != nil {
		return "", err
	}
	return path, nil
}

// Path returns the backing file, or empty when running on defaults.
func (c *Config) Path() string { return c.path }
