package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"tickerlookup/internal/provider"
)

// QuotesCount is the fixed number of results requested per search.
const QuotesCount = 10

// searchResponse is the subset of the search payload we read.
type searchResponse struct {
	Quotes []searchQuote `json:"quotes"`
}

type searchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	QuoteType string `json:"quoteType"`
	Exchange  string `json:"exchange"`
}

// Search returns the equities and ETFs matching query, in response order.
// An empty query returns no results without touching the network.
func (c *SearchClient) Search(ctx context.Context, query string) ([]provider.TickerSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []provider.TickerSearchResult{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", fmt.Sprint(QuotesCount))
	params.Set("newsCount", "0")
	params.Set("listsCount", "0")

	endpoint := fmt.Sprintf("%s/v1/finance/search?%s", strings.TrimRight(c.baseURL, "/"), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, &provider.Error{Provider: name, Op: "search", Kind: provider.KindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: name, Op: "search", Kind: provider.KindTransport, Err: fmt.Errorf("performing request: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, statusError("search", res)
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &provider.Error{Provider: name, Op: "search", Kind: provider.KindDecode, Err: fmt.Errorf("decoding search response: %w", err)}
	}

	return filterQuotes(body.Quotes), nil
}

// SearchTickers is the fail-soft form of Search: any failure is logged and
// reported as zero results.
func (c *SearchClient) SearchTickers(ctx context.Context, query string) []provider.TickerSearchResult {
	results, err := c.Search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Str("kind", provider.KindOf(err).String()).Msg("ticker search failed")
		return []provider.TickerSearchResult{}
	}
	return results
}

func statusError(op string, res *http.Response) error {
	e := &provider.Error{Provider: name, Op: op, Kind: provider.KindStatus, StatusCode: res.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	if msg := strings.TrimSpace(string(b)); msg != "" {
		e.Err = errors.New(msg)
	}
	return e
}

func filterQuotes(quotes []searchQuote) []provider.TickerSearchResult {
	out := make([]provider.TickerSearchResult, 0, len(quotes))
	for _, q := range quotes {
		if q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
			continue
		}
		display := q.LongName
		if display == "" {
			display = q.ShortName
		}
		if display == "" {
			display = q.Symbol
		}
		out = append(out, provider.TickerSearchResult{Symbol: q.Symbol, Name: display})
	}
	return out
}
