// Package lookup ties the search and quote clients to the recents list.
package lookup

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tickerlookup/internal/provider"
)

// Recents is the subset of the recents store the service needs.
type Recents interface {
	List(ctx context.Context) []provider.RecentTicker
	Upsert(ctx context.Context, symbol, name string) error
	Remove(ctx context.Context, symbol string) error
	Clear(ctx context.Context) error
}

// RecentView is a recents entry enriched with a fresh quote. Quote is nil
// when the fetch failed; Err says why.
type RecentView struct {
	provider.RecentTicker
	Quote *provider.Quote `json:"quote,omitempty"`
	Err   error           `json:"-"`
}

// Service is safe for concurrent use.
type Service struct {
	searcher provider.Searcher
	quotes   provider.QuoteSource
	recents  Recents

	maxConcurrency int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxConcurrency bounds the parallel quote fetches of Recents.
func WithMaxConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

func New(searcher provider.Searcher, quotes provider.QuoteSource, recents Recents, opts ...Option) *Service {
	s := &Service{searcher: searcher, quotes: quotes, recents: recents, maxConcurrency: 4}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs a ticker search. On failure the results are empty, so callers
// that do not care render it like a search with no hits, and err carries the
// failure for those that do.
func (s *Service) Search(ctx context.Context, query string) ([]provider.TickerSearchResult, error) {
	results, err := s.searcher.Search(ctx, query)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Str("kind", provider.KindOf(err).String()).Msg("search failed")
		return []provider.TickerSearchResult{}, err
	}
	return results, nil
}

// Lookup fetches the quote for ticker and records it in the recents list.
func (s *Service) Lookup(ctx context.Context, ticker string) (*provider.Quote, error) {
	q, err := s.fetch(ctx, ticker)
	if err != nil {
		return nil, err
	}
	s.record(ctx, ticker, q)
	return q, nil
}

func (s *Service) fetch(ctx context.Context, ticker string) (*provider.Quote, error) {
	q, err := s.quotes.Quote(ctx, ticker)
	if err != nil {
		ev := log.Warn()
		if provider.IsNotFound(err) {
			ev = log.Info()
		}
		ev.Err(err).Str("ticker", ticker).Str("kind", provider.KindOf(err).String()).Msg("quote lookup failed")
		return nil, err
	}
	return q, nil
}

func (s *Service) record(ctx context.Context, ticker string, q *provider.Quote) {
	symbol := q.Ticker
	if symbol == "" {
		symbol = strings.ToUpper(strings.TrimSpace(ticker))
	}
	if err := s.recents.Upsert(ctx, symbol, q.Name); err != nil {
		log.Warn().Err(err).Str("ticker", symbol).Msg("recording recent ticker failed")
	}
}

// Recents lists the recents and fetches a quote for each one concurrently.
// A failed fetch only affects its own entry; order follows the list.
func (s *Service) Recents(ctx context.Context) []RecentView {
	list := s.recents.List(ctx)
	views := make([]RecentView, len(list))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, r := range list {
		views[i].RecentTicker = r
		g.Go(func() error {
			q, err := s.quotes.Quote(gctx, r.Symbol)
			if err != nil {
				log.Debug().Err(err).Str("ticker", r.Symbol).Msg("enriching recent ticker failed")
				views[i].Err = err
				return nil
			}
			views[i].Quote = q
			return nil
		})
	}
	_ = g.Wait()
	return views
}

// Remove drops symbol from the recents list.
func (s *Service) Remove(ctx context.Context, symbol string) error {
	return s.recents.Remove(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}

// Clear empties the recents list.
func (s *Service) Clear(ctx context.Context) error {
	return s.recents.Clear(ctx)
}
