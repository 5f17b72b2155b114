// Package tradingview executes screener queries against the TradingView
// scanner HTTP API.
package tradingview

import (
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public scanner endpoint.
const DefaultBaseURL = "https://scanner.tradingview.com"

// Client provides access to the scanner REST API. It satisfies
// screener.Executor. Calls are single-shot: there are no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	lang       string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a scanner client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		lang: "en",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage sets the options.lang value sent with every query.
func WithLanguage(lang string) ClientOption {
	return func(c *Client) {
		c.lang = lang
	}
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }
