// Package huggingface implements icon suggestions backed by the
// Hugging Face inference router, which speaks the OpenAI-compatible
// chat completions protocol.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glyphgen/glyphgen"
	"github.com/glyphgen/glyphgen/providers"
	"github.com/glyphgen/glyphgen/retry"
)

var (
	DefaultModel         = "deepseek-ai/DeepSeek-V3.1"
	DefaultEndpoint      = "https://router.huggingface.co/v1/chat/completions"
	DefaultMaxTokens     = 4000
	DefaultClient        = &http.Client{Timeout: 60 * time.Second}
	DefaultMaxRetries    = 3
	DefaultRetryBaseWait = 2 * time.Second
)

func init() {
	providers.Register("huggingface", func(apiKey string) (glyphgen.SuggestionProvider, error) {
		return New(WithAPIKey(apiKey)), nil
	})
}

var _ glyphgen.SuggestionProvider = &Provider{}

type Provider struct {
	client        *http.Client
	apiKey        string
	endpoint      string
	model         string
	maxTokens     int
	temperature   float64
	maxRetries    int
	retryBaseWait time.Duration
}

type Option func(*Provider)

func WithAPIKey(apiKey string) Option {
	return func(p *Provider) {
		p.apiKey = apiKey
	}
}

func WithEndpoint(endpoint string) Option {
	return func(p *Provider) {
		p.endpoint = endpoint
	}
}

func WithClient(client *http.Client) Option {
	return func(p *Provider) {
		p.client = client
	}
}

func WithModel(model string) Option {
	return func(p *Provider) {
		p.model = model
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(p *Provider) {
		p.maxTokens = maxTokens
	}
}

func WithTemperature(temperature float64) Option {
	return func(p *Provider) {
		p.temperature = temperature
	}
}

func WithMaxRetries(maxRetries int) Option {
	return func(p *Provider) {
		p.maxRetries = maxRetries
	}
}

func WithRetryBaseWait(wait time.Duration) Option {
	return func(p *Provider) {
		p.retryBaseWait = wait
	}
}

func New(opts ...Option) *Provider {
	p := &Provider{
		client:        DefaultClient,
		endpoint:      DefaultEndpoint,
		model:         DefaultModel,
		maxTokens:     DefaultMaxTokens,
		temperature:   0.7,
		maxRetries:    DefaultMaxRetries,
		retryBaseWait: DefaultRetryBaseWait,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string {
	return "huggingface"
}

func (p *Provider) ModelName() string {
	return p.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *Provider) SuggestIcons(ctx context.Context, query string, sctx *glyphgen.SuggestContext) (*glyphgen.SuggestResponse, error) {
	request := chatRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: providers.SystemPrompt},
			{Role: "user", Content: providers.BuildUserMessage(query, sctx)},
		},
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	var result chatResponse
	err = retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
		if err != nil {
			return retry.MarkPermanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+p.apiKey)

		resp, err := p.client.Do(req)
		if err != nil {
			return fmt.Errorf("error making request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			return providers.NewError(resp.StatusCode, string(respBody))
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
		return nil
	}, retry.WithMaxRetries(p.maxRetries), retry.WithBaseWait(p.retryBaseWait))
	if err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("empty response from huggingface api")
	}
	return providers.ParseSuggestions(query, result.Choices[0].Message.Content)
}
