package zacks

import (
	"bytes"
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

// field decodes a JSON string, number, bool or null into its display text.
// The feed is not consistent about quoting numeric values.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(strings.TrimSpace(s))
	case b[0] == '{', b[0] == '[':
		*f = ""
	default:
		*f = field(b)
	}
	return nil
}

// record is one entry of the feed, keyed by ticker in the response.
//
//	{
//	  "AAPL": {
//	    "ticker": "AAPL",
//	    "name": "Apple Inc.",
//	    "zacks_rank": "3",
//	    "zacks_rank_text": "Hold",
//	    "last": "227.48",
//	    "source": {"sungard": {"open": "226.1", "yrlow": "164.08", ...}}
//	  }
//	}
type record struct {
	Ticker           field `json:"ticker"`
	Name             field `json:"name"`
	Last             field `json:"last"`
	NetChange        field `json:"net_change"`
	PercentNetChange field `json:"percent_net_change"`
	PreviousClose    field `json:"previous_close"`
	ZacksRank        field `json:"zacks_rank"`
	ZacksRankText    field `json:"zacks_rank_text"`
	DividendYield    field `json:"dividend_yield"`
	Updated          field `json:"updated"`
	Volume           field `json:"volume"`
	High             field `json:"high"`
	Low              field `json:"low"`
	Error            field `json:"error"`
	Source           struct {
		Sungard sungard `json:"sungard"`
	} `json:"source"`
}

type sungard struct {
	Open      field `json:"open"`
	Bid       field `json:"bid"`
	Ask       field `json:"ask"`
	Volume    field `json:"volume"`
	DayLow    field `json:"day_low"`
	DayHigh   field `json:"day_high"`
	YearLow   field `json:"yrlow"`
	YearHigh  field `json:"yrhigh"`
	MarketCap field `json:"market_cap"`
	PERatio   field `json:"pe_ratio"`
	EPS       field `json:"eps"`
}

// Quote returns the quote for ticker. The ticker is uppercased before it is
// sent. A ticker the feed does not know yields a KindNotFound error.
func (c *QuoteClient) Quote(ctx context.Context, ticker string) (*provider.Quote, error) {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	if symbol == "" {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindNotFound, Err: errors.New("empty ticker")}
	}

	query := url.Values{}
	query.Set("t", symbol)
	endpoint := fmt.Sprintf("%s/index.php?%s", strings.TrimRight(c.baseURL, "/"), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindTransport, Err: fmt.Errorf("performing request: %w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		e := &provider.Error{Provider: name, Op: "quote", Kind: provider.KindStatus, StatusCode: res.StatusCode}
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		if msg := strings.TrimSpace(string(b)); msg != "" {
			e.Err = errors.New(msg)
		}
		return nil, e
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindDecode, Err: fmt.Errorf("decoding quote response: %w", err)}
	}

	raw, ok := body[symbol]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindNotFound, Err: fmt.Errorf("%s not in response", symbol)}
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindDecode, Err: fmt.Errorf("decoding %s: %w", symbol, err)}
	}
	if rec.Error != "" && rec.Name == "" && rec.Last == "" {
		return nil, &provider.Error{Provider: name, Op: "quote", Kind: provider.KindNotFound, Err: errors.New(string(rec.Error))}
	}

	q := rec.toQuote()
	if q.Ticker == "" {
		q.Ticker = symbol
	}
	return &q, nil
}

// GetQuote is the fail-soft form of Quote: any failure is logged and
// reported as an absent quote.
func (c *QuoteClient) GetQuote(ctx context.Context, ticker string) (*provider.Quote, bool) {
	q, err := c.Quote(ctx, ticker)
	if err != nil {
		log.Warn().Err(err).Str("ticker", ticker).Str("kind", provider.KindOf(err).String()).Msg("quote lookup failed")
		return nil, false
	}
	return q, true
}

func (r record) toQuote() provider.Quote {
	s := r.Source.Sungard
	return provider.Quote{
		Ticker:           string(r.Ticker),
		Name:             string(r.Name),
		Last:             string(r.Last),
		NetChange:        string(r.NetChange),
		PercentNetChange: string(r.PercentNetChange),
		PreviousClose:    string(r.PreviousClose),
		ZacksRank:        string(r.ZacksRank),
		ZacksRankText:    string(r.ZacksRankText),
		DividendYield:    string(r.DividendYield),
		Updated:          string(r.Updated),
		Open:             string(s.Open),
		Bid:              string(s.Bid),
		Ask:              string(s.Ask),
		Volume:           first(r.Volume, s.Volume),
		DayLow:           first(r.Low, s.DayLow),
		DayHigh:          first(r.High, s.DayHigh),
		YearLow:          string(s.YearLow),
		YearHigh:         string(s.YearHigh),
		MarketCap:        string(s.MarketCap),
		PERatio:          string(s.PERatio),
		EPS:              string(s.EPS),
	}
}

func first(vs ...field) string {
	for _, v := range vs {
		if v != "" {
			return string(v)
		}
	}
	return ""
}
