package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Backend is one interchangeable language-model provider.
// Implementations are constructed once at startup and live for the
// process lifetime; every call must honor the caller's context deadline.
type Backend interface {
	// Name returns the backend identity used in routing metadata.
	Name() string

	// Complete sends a single-turn completion request and returns the text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Probe performs a cheap health check.
	Probe(ctx context.Context) error
}

// chatBackend talks to any OpenAI-compatible endpoint. All supported
// providers (ollama, openai, deepseek, groq) expose this contract.
type chatBackend struct {
	name        string
	model       string
	client      *openai.Client
	maxTokens   int
	temperature float32
}

// NewBackend creates a Backend from its configuration.
func NewBackend(cfg BackendConfig) Backend {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &chatBackend{
		name:        cfg.Name,
		model:       cfg.Model,
		client:      openai.NewClientWithConfig(clientCfg),
		maxTokens:   1024,
		temperature: 0.7,
	}
}

// NewBackends constructs every backend listed in the config, preserving order.
func NewBackends(cfg *Config) []Backend {
	backends := make([]Backend, 0, len(cfg.Backends))
	for _, b := range cfg.Backends {
		backends = append(backends, NewBackend(b))
	}
	return backends
}

func (b *chatBackend) Name() string {
	return b.name
}

func (b *chatBackend) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Messages:    messages,
		MaxTokens:   b.maxTokens,
		Temperature: b.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", b.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s completion: empty response", b.name)
	}

	return resp.Choices[0].Message.Content, nil
}

func (b *chatBackend) Probe(ctx context.Context) error {
	if _, err := b.client.ListModels(ctx); err != nil {
		return fmt.Errorf("%s probe: %w", b.name, err)
	}
	return nil
}

var _ Backend = (*chatBackend)(nil)
