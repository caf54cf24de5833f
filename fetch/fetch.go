// Package fetch retrieves registry documents for converter construction.
//
// A source string is dispatched by shape: http(s) URLs are fetched with
// a TTL cache, paths to existing files are read from disk, and anything
// else is treated as inline document content.
// The core curies package never performs I/O itself; it consumes the
// bytes this package produces.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/c360/curies/errors"
)

const (
	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultCacheTTL is how long fetched URL bodies are reused.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultAccept is the Accept header sent with registry requests.
	DefaultAccept = "application/json"
)

// Client retrieves registry documents. The zero value is not usable;
// construct with NewClient.
type Client struct {
	httpClient *http.Client
	cache      *gocache.Cache
	cacheTTL   time.Duration
	accept     string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCacheTTL sets how long fetched URL bodies are cached. A zero or
// negative TTL disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// WithAccept sets the Accept header sent with registry requests.
func WithAccept(accept string) Option {
	return func(c *Client) {
		c.accept = accept
	}
}

// NewClient creates a fetch client with default timeout and caching.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		cacheTTL:   DefaultCacheTTL,
		accept:     DefaultAccept,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheTTL > 0 {
		c.cache = gocache.New(c.cacheTTL, 2*c.cacheTTL)
	}
	return c
}

// Document retrieves the registry document named by source. URLs are
// fetched, paths to existing files are read, and any other string is
// returned as-is (inline content).
func (c *Client) Document(ctx context.Context, source string) ([]byte, error) {
	if isURL(source) {
		return c.URL(ctx, source)
	}
	if fileExists(source) {
		return c.File(source)
	}
	return []byte(source), nil
}

// URL fetches a registry document over HTTP. Bodies are cached per URL
// for the configured TTL.
func (c *Client) URL(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if cached, ok := c.cache.Get(url); ok {
			return cached.([]byte), nil
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Fetch(url, err)
	}
	req.Header.Set("Accept", c.accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Fetch(url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Fetch(url, fmt.Errorf("unexpected status %s", resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Fetch(url, err)
	}
	if c.cache != nil {
		c.cache.Set(url, body, gocache.DefaultExpiration)
	}
	return body, nil
}

// File reads a registry document from disk. A missing file is a NotFound
// error.
func (c *Client) File(path string) ([]byte, error) {
	if !fileExists(path) {
		return nil, errors.NotFound(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Fetch(path, err)
	}
	return data, nil
}

// isURL reports whether source should be fetched over the network.
func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "https://")
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
