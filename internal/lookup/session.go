package lookup

import (
	"context"

	"tickerlookup/internal/latest"
	"tickerlookup/internal/provider"
)

// Session serves one interactive user. When searches or lookups overlap,
// only the most recently issued one reports as current; an older one that
// resolves later is reported stale and must not be displayed.
type Session struct {
	svc *Service

	searches latest.Tracker
	lookups  latest.Tracker
}

func (s *Service) NewSession() *Session {
	return &Session{svc: s}
}

// SearchOutcome is the result of one SearchAsync call.
type SearchOutcome struct {
	Query   string
	Results []provider.TickerSearchResult
	Current bool
	Err     error
}

// Search runs query. current is false when a newer search was issued while
// this one was in flight.
func (ss *Session) Search(ctx context.Context, query string) (results []provider.TickerSearchResult, current bool, err error) {
	out := ss.finishSearch(ctx, ss.searches.Begin(query))
	return out.Results, out.Current, out.Err
}

// SearchAsync registers query as the newest search before it returns, then
// runs it in the background. The channel receives exactly one outcome.
func (ss *Session) SearchAsync(ctx context.Context, query string) <-chan SearchOutcome {
	tk := ss.searches.Begin(query)
	ch := make(chan SearchOutcome, 1)
	go func() {
		ch <- ss.finishSearch(ctx, tk)
	}()
	return ch
}

func (ss *Session) finishSearch(ctx context.Context, tk latest.Ticket) SearchOutcome {
	results, err := ss.svc.Search(ctx, tk.Key)
	return SearchOutcome{Query: tk.Key, Results: results, Current: ss.searches.Current(tk), Err: err}
}

// Lookup fetches ticker. A stale lookup is discarded and not recorded in the
// recents list.
func (ss *Session) Lookup(ctx context.Context, ticker string) (q *provider.Quote, current bool, err error) {
	tk := ss.lookups.Begin(ticker)
	q, err = ss.svc.fetch(ctx, ticker)
	if !ss.lookups.Current(tk) {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	ss.svc.record(ctx, ticker, q)
	return q, true, nil
}
