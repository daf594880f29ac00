// Package openai implements icon suggestions backed by the OpenAI
// chat completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/glyphgen/glyphgen"
	"github.com/glyphgen/glyphgen/providers"
)

var (
	DefaultModel       = "gpt-4o-mini"
	DefaultMaxTokens   = int64(4000)
	DefaultTemperature = 0.7
)

func init() {
	providers.Register("openai", func(apiKey string) (glyphgen.SuggestionProvider, error) {
		return New(WithAPIKey(apiKey)), nil
	})
}

var _ glyphgen.SuggestionProvider = &Provider{}

type Provider struct {
	client      openai.Client
	model       string
	maxTokens   int64
	temperature float64
	options     []option.RequestOption
}

type Option func(*Provider)

func WithAPIKey(apiKey string) Option {
	return func(p *Provider) {
		p.options = append(p.options, option.WithAPIKey(apiKey))
	}
}

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(url string) Option {
	return func(p *Provider) {
		p.options = append(p.options, option.WithBaseURL(url))
	}
}

func WithModel(model string) Option {
	return func(p *Provider) {
		p.model = model
	}
}

func WithMaxTokens(maxTokens int64) Option {
	return func(p *Provider) {
		p.maxTokens = maxTokens
	}
}

func WithTemperature(temperature float64) Option {
	return func(p *Provider) {
		p.temperature = temperature
	}
}

func New(opts ...Option) *Provider {
	p := &Provider{
		model:       DefaultModel,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = openai.NewClient(p.options...)
	return p
}

func (p *Provider) Name() string {
	return "openai"
}

func (p *Provider) ModelName() string {
	return p.model
}

func (p *Provider) SuggestIcons(ctx context.Context, query string, sctx *glyphgen.SuggestContext) (*glyphgen.SuggestResponse, error) {
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(providers.SystemPrompt),
			openai.UserMessage(providers.BuildUserMessage(query, sctx)),
		},
		MaxTokens:   openai.Int(p.maxTokens),
		Temperature: openai.Float(p.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from openai api")
	}
	return providers.ParseSuggestions(query, completion.Choices[0].Message.Content)
}
