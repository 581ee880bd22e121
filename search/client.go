// Package search finds and downloads a picture for a text query.
//
// A Client asks an HTML image-search page for candidates, picks one of them
// and downloads its bytes. Decoding is left to the caller.
package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"

	"imagetext/internal/logging"
)

const (
	DefaultEndpoint  = "https://www.bing.com/images/search"
	DefaultUserAgent = "imagetext/1.0"
	DefaultTimeout   = 30 * time.Second
	DefaultMaxBytes  = 20 << 20
)

type Client struct {
	Endpoint  string
	UserAgent string
	MaxBytes  int64
	HTTP      *http.Client
	// Pick chooses one candidate URL. It is only called with a non-empty slice.
	Pick func([]string) string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTP = hc
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.UserAgent = ua
		}
	}
}

func WithMaxBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.MaxBytes = n
		}
	}
}

func WithPicker(pick func([]string) string) Option {
	return func(c *Client) {
		c.Pick = pick
	}
}

// New returns a Client for endpoint. An empty endpoint means DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		Endpoint:  endpoint,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
		HTTP:      &http.Client{Timeout: DefaultTimeout},
		Pick:      lo.Sample[string],
	}
	for _, o := range opts {
		o(c)
	}

	return c
}

// Search returns candidate image URLs for query.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("search endpoint %q: %w", c.Endpoint, err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	urls, err := extractImageURLs(bytes.NewReader(body), u)
	if err != nil {
		return nil, fmt.Errorf("parse results for %q: %w", query, err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%q: %w", query, ErrNoResults)
	}

	logging.Logger().Debug("search results", "query", query, "candidates", len(urls))
	return urls, nil
}

// Fetch downloads rawURL, refusing bodies larger than MaxBytes.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL)
}

// Image searches for query, picks one candidate and downloads it.
func (c *Client) Image(ctx context.Context, query string) (string, []byte, error) {
	urls, err := c.Search(ctx, query)
	if err != nil {
		return "", nil, err
	}

	chosen := c.Pick(urls)
	logging.Logger().Debug("fetching image", "query", query, "url", chosen)

	data, err := c.Fetch(ctx, chosen)
	if err != nil {
		return chosen, nil, err
	}
	return chosen, data, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	if int64(len(data)) > c.MaxBytes {
		return nil, fmt.Errorf("GET %s: %w (%d bytes)", rawURL, ErrTooLarge, c.MaxBytes)
	}

	return data, nil
}
