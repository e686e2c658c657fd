package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/rs/zerolog"
)

// OpenAIGenerator invokes an OpenAI-compatible chat completion endpoint.
// Model, credentials and base URL are injected, never decided here.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// GeneratorConfig holds the injected provider settings
type GeneratorConfig struct {
	APIKey         string
	Model          string
	BaseURL        string // optional, for OpenAI-compatible providers
	TimeoutSeconds int    // defaults to DefaultTimeoutSeconds
}

// NewOpenAIGenerator creates a generator over the configured provider
func NewOpenAIGenerator(cfg GeneratorConfig, log zerolog.Logger) *OpenAIGenerator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if cfg.TimeoutSeconds <= 0 {
		timeout = DefaultTimeoutSeconds * time.Second
	}

	return &OpenAIGenerator{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: timeout,
		log:     log,
	}
}

// GenerateText invokes the provider with a single prompt and returns the
// generated text verbatim. No truncation, no re-prompting, single attempt.
func (g *OpenAIGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		g.log.Warn().Err(err).Str("model", g.model).Msg("generation request failed")
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response contained no choices", ErrInvalidResponse)
	}

	return resp.Choices[0].Message.Content, nil
}
