package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxSizeBytes caps response bodies read into memory.
const DefaultMaxSizeBytes = 32 << 20 // 32 MiB

// DefaultUserAgent is sent with every request. Some icon hosts reject
// requests without a browser-like user agent.
const DefaultUserAgent = "Mozilla/5.0 (compatible; glyphgen)"

// FetchResult holds an in-memory fetch response.
type FetchResult struct {
	Data        []byte
	ContentType string
}

// Fetcher downloads resources into memory with a size cap.
type Fetcher struct {
	Client       *http.Client
	UserAgent    string
	MaxSizeBytes int64
}

// NewFetcher returns a Fetcher with a 30 second timeout and default limits.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:       &http.Client{Timeout: 30 * time.Second},
		UserAgent:    DefaultUserAgent,
		MaxSizeBytes: DefaultMaxSizeBytes,
	}
}

// Fetch downloads the given URL. Non-2xx responses return a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewFetchError(resp.StatusCode, fmt.Errorf("failed to fetch %s", url))
	}

	maxSize := f.MaxSizeBytes
	if maxSize <= 0 {
		maxSize = DefaultMaxSizeBytes
	}
	if resp.ContentLength > maxSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size: %d > %d", resp.ContentLength, maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size: %d bytes read", maxSize)
	}

	return &FetchResult{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
