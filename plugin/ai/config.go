package ai

import (
	"github.com/pkg/errors"

	"github.com/verbalis/verbalis/internal/profile"
)

// BackendConfig represents the configuration for one language-model backend.
type BackendConfig struct {
	Name    string // ollama, openai, deepseek, groq
	Model   string
	APIKey  string
	BaseURL string
}

// Config represents AI configuration.
type Config struct {
	// Backends lists the configured backends in no particular order.
	// Routing priority is decided by the router policy, not here.
	Backends []BackendConfig
}

// NewConfigFromProfile creates AI config from profile.
// A backend without its API key (or, for ollama, base URL) is omitted
// rather than erroring; the router degrades to whatever is configured.
func NewConfigFromProfile(p *profile.Profile) *Config {
	cfg := &Config{}

	if p.OllamaBaseURL != "" {
		cfg.Backends = append(cfg.Backends, BackendConfig{
			Name:    "ollama",
			Model:   p.OllamaModel,
			BaseURL: p.OllamaBaseURL,
		})
	}
	if p.GroqAPIKey != "" {
		cfg.Backends = append(cfg.Backends, BackendConfig{
			Name:    "groq",
			Model:   p.GroqModel,
			APIKey:  p.GroqAPIKey,
			BaseURL: p.GroqBaseURL,
		})
	}
	if p.OpenAIAPIKey != "" {
		cfg.Backends = append(cfg.Backends, BackendConfig{
			Name:    "openai",
			Model:   p.OpenAIModel,
			APIKey:  p.OpenAIAPIKey,
			BaseURL: p.OpenAIBaseURL,
		})
	}
	if p.DeepSeekAPIKey != "" {
		cfg.Backends = append(cfg.Backends, BackendConfig{
			Name:    "deepseek",
			Model:   p.DeepSeekModel,
			APIKey:  p.DeepSeekAPIKey,
			BaseURL: p.DeepSeekBaseURL,
		})
	}

	return cfg
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Backends) == 0 {
		return errors.New("at least one backend is required")
	}
	for _, b := range c.Backends {
		if b.Model == "" {
			return errors.Errorf("backend %s: model is required", b.Name)
		}
		if b.Name != "ollama" && b.APIKey == "" {
			return errors.Errorf("backend %s: API key is required", b.Name)
		}
	}
	return nil
}
