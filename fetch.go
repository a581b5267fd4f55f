package web2pdf

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetch defaults.
const (
	defaultFetchTimeout = 30 * time.Second
	defaultUserAgent    = "web2pdf/1.0 (+https://github.com/alnah/go-web2pdf)"
	maxArticleSize      = 10 << 20 // 10MB cap on article HTML
)

// htmlFetcher abstracts article retrieval.
type htmlFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// httpFetcher downloads article HTML over HTTP.
type httpFetcher struct {
	client    *http.Client
	userAgent string
}

// newHTTPFetcher creates a fetcher with a bounded client.
func newHTTPFetcher(timeout time.Duration, userAgent string) *httpFetcher {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &httpFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchHTML downloads the article and returns its HTML. Non-2xx statuses
// wrap ErrFetchFailed.
func (f *httpFetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %s", ErrFetchFailed, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleSize))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}
	if len(body) == 0 {
		return "", ErrEmptyHTML
	}

	return string(body), nil
}
