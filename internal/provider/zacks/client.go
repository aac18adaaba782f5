package zacks

import (
	"net/http"
)

const (
	baseURL = "https://quote-feed.zacks.com"
	name    = "zacks"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=zacks_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// QuoteClient is a client for the Zacks quote feed.
type QuoteClient struct {
	// baseURL is the scheme and host of the feed.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// QuoteClientOption is a configuration option for the quote client.
type QuoteClientOption func(*QuoteClient)

// WithBaseURL sets the base URL for the feed.
func WithBaseURL(baseURL string) QuoteClientOption {
	return func(c *QuoteClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the feed.
func WithHTTPClient(httpClient HTTPClient) QuoteClientOption {
	return func(c *QuoteClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) QuoteClientOption {
	return func(c *QuoteClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// NewQuoteClient creates a new quote client.
func NewQuoteClient(options ...QuoteClientOption) *QuoteClient {
	c := &QuoteClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	for _, option := range options {
		option(c)
	}
	return c
}
