package httpclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// maxErrorBody caps how much of a non-2xx body is kept on StatusError.
const maxErrorBody = 512

// Config holds transport configuration.
type Config struct {
	// Timeout bounds a whole request including reading the body.
	// Zero leaves the net/http default (no timeout).
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

// Client issues one-shot GET requests and returns the raw response text.
// It never retries.
type Client struct {
	http   *http.Client
	logger *slog.Logger
}

// New creates a new Client with a default http.Client.
func New(cfg Config, logger *slog.Logger) *Client {
	return NewWithHTTPClient(&http.Client{Timeout: cfg.Timeout}, logger)
}

// NewWithHTTPClient creates a Client with a custom http.Client (e.g. for tests or proxies).
func NewWithHTTPClient(httpClient *http.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// FetchText performs a GET and returns the exact body on a 2xx response.
// Non-2xx responses yield a *StatusError.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", RedactURL(rawURL), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &StatusError{
			URL:        RedactURL(rawURL),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body from %s: %w", RedactURL(rawURL), err)
	}

	c.logger.Debug("fetched",
		slog.String("url", RedactURL(rawURL)),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Duration("latency", time.Since(start)),
	)
	return string(body), nil
}

// FetchTextAsync starts FetchText on its own goroutine and returns at once.
func (c *Client) FetchTextAsync(ctx context.Context, rawURL string) *Future {
	return Go(func() (string, error) {
		return c.FetchText(ctx, rawURL)
	})
}

// RedactURL strips the query string and credentials so API keys never reach logs.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<redacted>"
	}
	u.User = nil
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
