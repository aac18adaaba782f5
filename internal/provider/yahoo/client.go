package yahoo

import (
	"net/http"

	"tickerlookup/internal/httpx"
)

const (
	baseURL = "https://query1.finance.yahoo.com"
	name    = "yahoo"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SearchClient is a client for the Yahoo Finance ticker search endpoint.
type SearchClient struct {
	// baseURL is the scheme and host of the API.
	baseURL string
	// httpClient performs the requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// SearchClientOption is a configuration option for the search client.
type SearchClientOption func(*SearchClient)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) SearchClientOption {
	return func(c *SearchClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) SearchClientOption {
	return func(c *SearchClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) SearchClientOption {
	return func(c *SearchClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithUserAgent overrides the browser user agent sent with each request.
func WithUserAgent(ua string) SearchClientOption {
	return func(c *SearchClient) {
		if ua != "" {
			c.header.Set("User-Agent", ua)
		}
	}
}

// NewSearchClient creates a new search client.
func NewSearchClient(options ...SearchClientOption) *SearchClient {
	c := &SearchClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	c.header.Set("User-Agent", httpx.DefaultUserAgent)
	for _, option := range options {
		option(c)
	}
	return c
}
