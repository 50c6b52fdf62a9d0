// File path: internal/llm/llm.go
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/surveyforge/surveyforge/internal/common"
	"github.com/surveyforge/surveyforge/internal/llm/providers"
	"github.com/surveyforge/surveyforge/internal/metrics"
)

// Message is a single chat turn sent to a provider.
type Message = providers.Message

// Provider abstracts a chat-completion backend.
type Provider = providers.Provider

// Options selects and configures a provider.
type Options struct {
	// Provider is "openai" or "local". Empty picks openai when an API key
	// is present, local otherwise.
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	// TimeoutSeconds bounds each completion request. Zero means the
	// provider default.
	TimeoutSeconds int
}

// OptionsFromEnv builds Options from the process environment.
func OptionsFromEnv() Options {
	return Options{
		Provider: os.Getenv("LLM_PROVIDER"),
		APIKey:   os.Getenv("OPENAI_API_KEY"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
		Model:    os.Getenv("LLM_MODEL"),
	}
}

// NewProvider constructs the configured backend.
func NewProvider(opts Options) (Provider, error) {
	logger := common.Logger()
	name := strings.ToLower(strings.TrimSpace(opts.Provider))
	if name == "" {
		if opts.APIKey != "" {
			name = "openai"
		} else {
			name = "local"
		}
	}
	switch name {
	case "openai":
		if opts.APIKey == "" {
			return nil, fmt.Errorf("llm: openai provider requires an API key")
		}
		logger.Info("llm: using openai provider", "model", opts.Model)
		return providers.NewOpenAI(providers.OpenAIConfig{
			APIKey:         opts.APIKey,
			BaseURL:        opts.BaseURL,
			Model:          opts.Model,
			TimeoutSeconds: opts.TimeoutSeconds,
		}), nil
	case "local":
		logger.Info("llm: using local provider", "base_url", opts.BaseURL, "model", opts.Model)
		return providers.NewLocal(providers.LocalConfig{
			BaseURL:        opts.BaseURL,
			Model:          opts.Model,
			TimeoutSeconds: opts.TimeoutSeconds,
		}), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", opts.Provider)
	}
}

// Complete is a convenience wrapper for the common system+user call shape.
func Complete(ctx context.Context, p Provider, system, user string) (string, error) {
	msgs := make([]Message, 0, 2)
	if system != "" {
		msgs = append(msgs, Message{Role: "system", Content: system})
	}
	msgs = append(msgs, Message{Role: "user", Content: user})
	out, err := p.Chat(ctx, msgs)
	if err != nil {
		metrics.ExternalFailures.WithLabelValues("llm").Inc()
	}
	return out, err
}
