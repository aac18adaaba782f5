package provider

import (
	"context"
	"errors"
	"fmt"
)

// TickerSearchResult is a single hit returned by a ticker search.
type TickerSearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Quote is a quotation and ranking snapshot for one ticker.
// Values are kept as the vendor's display strings; "NA", "-" or empty mean missing.
type Quote struct {
	Ticker           string `json:"ticker"`
	Name             string `json:"name"`
	Last             string `json:"last"`
	NetChange        string `json:"net_change"`
	PercentNetChange string `json:"percent_net_change"`
	PreviousClose    string `json:"previous_close"`
	ZacksRank        string `json:"zacks_rank"`
	ZacksRankText    string `json:"zacks_rank_text"`
	DividendYield    string `json:"dividend_yield"`
	Updated          string `json:"updated"`

	Open      string `json:"open"`
	Bid       string `json:"bid"`
	Ask       string `json:"ask"`
	Volume    string `json:"volume"`
	DayLow    string `json:"day_low"`
	DayHigh   string `json:"day_high"`
	YearLow   string `json:"year_low"`
	YearHigh  string `json:"year_high"`
	MarketCap string `json:"market_cap"`
	PERatio   string `json:"pe_ratio"`
	EPS       string `json:"eps"`
}

// RecentTicker is one entry of the persisted recency list.
// Timestamp is in Unix milliseconds.
type RecentTicker struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

//go:generate mockgen -package=lookup_test -destination=../lookup/mock_provider_test.go -source=provider.go Searcher,QuoteSource

// Searcher looks up tickers by free text.
type Searcher interface {
	Search(ctx context.Context, query string) ([]TickerSearchResult, error)
}

// QuoteSource fetches a quote for one ticker.
type QuoteSource interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
}

// Kind classifies a provider failure.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindStatus
	KindDecode
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// ErrNotFound matches any *Error of KindNotFound via errors.Is.
var ErrNotFound = errors.New("ticker not found")

// Error is returned by the upstream clients.
type Error struct {
	Provider   string
	Op         string
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Kind == KindNotFound
}

// KindOf returns the Kind of err, or 0 when err is not a provider error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// IsNotFound reports whether err means the ticker does not exist upstream.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
