// File path: internal/llm/providers/local.go
package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	defaultLocalBaseURL = "http://localhost:11434/v1"
	defaultLocalModel   = "llama3.1"
)

// LocalConfig configures an OpenAI-compatible local endpoint, such as an
// Ollama or vLLM server.
type LocalConfig struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// LocalProvider reuses the OpenAI wire protocol against a local server.
// Local servers ignore the API key but the SDK requires one to be set.
type LocalProvider struct {
	client openai.Client
	model  string
}

func NewLocal(cfg LocalConfig) *LocalProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultLocalBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultLocalModel
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 300
	}
	client := openai.NewClient(
		option.WithAPIKey("local"),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(time.Duration(timeout)*time.Second),
	)
	return &LocalProvider{client: client, model: model}
}

func (p *LocalProvider) Name() string { return "local" }

func (p *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: toOpenAIMessages(messages),
	}
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("local chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("local chat: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
