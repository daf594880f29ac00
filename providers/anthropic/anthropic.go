// Package anthropic implements icon suggestions backed by the
// Anthropic Messages API.
package anthropic

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
	DefaultModel         = "claude-3-5-haiku-latest"
	DefaultEndpoint      = "https://api.anthropic.com/v1/messages"
	DefaultMaxTokens     = 4000
	DefaultClient        = &http.Client{Timeout: 60 * time.Second}
	DefaultMaxRetries    = 3
	DefaultRetryBaseWait = 2 * time.Second
	DefaultVersion       = "2023-06-01"
)

func init() {
	providers.Register("anthropic", func(apiKey string) (glyphgen.SuggestionProvider, error) {
		return New(WithAPIKey(apiKey)), nil
	})
}

var _ glyphgen.SuggestionProvider = &Provider{}

type Provider struct {
	client        *http.Client
	apiKey        string
	endpoint      string
	model         string
	version       string
	maxTokens     int
	temperature   float64
	maxRetries    int
	retryBaseWait time.Duration
}

func New(opts ...Option) *Provider {
	p := &Provider{
		client:        DefaultClient,
		endpoint:      DefaultEndpoint,
		model:         DefaultModel,
		version:       DefaultVersion,
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
	return "anthropic"
}

func (p *Provider) ModelName() string {
	return p.model
}

func (p *Provider) SuggestIcons(ctx context.Context, query string, sctx *glyphgen.SuggestContext) (*glyphgen.SuggestResponse, error) {
	request := Request{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		System:      providers.SystemPrompt,
		Messages: []Message{
			{Role: "user", Content: providers.BuildUserMessage(query, sctx)},
		},
	}
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %w", err)
	}

	var result Response
	err = retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
		if err != nil {
			return retry.MarkPermanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Api-Key", p.apiKey)
		req.Header.Set("Anthropic-Version", p.version)

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

	if len(result.Content) == 0 {
		return nil, fmt.Errorf("empty response from anthropic api")
	}
	return providers.ParseSuggestions(query, result.Content[0].Text)
}
