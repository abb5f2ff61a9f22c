package llm

import (
	"fmt"
	"net/http"
	"time"
)

// Provider kinds accepted by New.
const (
	KindOpenAI    = "openai"
	KindAnthropic = "anthropic"
	KindGoogle    = "google"
)

// Config selects and authenticates a provider. Model is optional and
// defaults per kind.
type Config struct {
	Kind   string
	APIKey string
	Model  string
}

// New creates a Provider from the configuration. It fails when the
// credential is missing or the kind is unrecognized.
func New(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm.New: API key is required for provider %q", cfg.Kind)
	}
	switch cfg.Kind {
	case KindOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.Model), nil
	case KindAnthropic:
		return NewAnthropic(cfg.APIKey, cfg.Model), nil
	case KindGoogle:
		return NewGoogle(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("llm.New: unsupported provider %q (supported: openai, anthropic, google)", cfg.Kind)
	}
}

// newHTTPClient returns the shared client shape with the fixed timeout.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
