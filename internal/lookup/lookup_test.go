package lookup_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tickerlookup/internal/kv"
	"tickerlookup/internal/lookup"
	"tickerlookup/internal/provider"
	"tickerlookup/internal/recents"
)

func notFound(ticker string) error {
	return &provider.Error{Provider: "zacks", Op: "quote " + ticker, Kind: provider.KindNotFound}
}

func steppedRecents() *recents.Store {
	t0 := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	var n atomic.Int64
	return recents.New(kv.NewMemory(), recents.WithClock(func() time.Time {
		return t0.Add(time.Duration(n.Add(1)) * time.Second)
	}))
}

func TestSearch_PassesThroughResults(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	searcher := NewMockSearcher(ctrl)
	want := []provider.TickerSearchResult{{Symbol: "AAPL", Name: "Apple Inc."}}
	searcher.EXPECT().Search(gomock.Any(), "apple").Return(want, nil)
	svc := lookup.New(searcher, NewMockQuoteSource(ctrl), steppedRecents())

	// Act
	got, err := svc.Search(t.Context(), "apple")

	// Assert
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSearch_FailureYieldsEmptyResults(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	searcher := NewMockSearcher(ctrl)
	boom := &provider.Error{Provider: "yahoo", Op: "search", Kind: provider.KindTransport, Err: errors.New("dial tcp: refused")}
	searcher.EXPECT().Search(gomock.Any(), "apple").Return(nil, boom)
	svc := lookup.New(searcher, NewMockQuoteSource(ctrl), steppedRecents())

	// Act
	got, err := svc.Search(t.Context(), "apple")

	// Assert
	require.ErrorIs(t, err, boom)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestLookup_RecordsRecentOnSuccess(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	quotes.EXPECT().Quote(gomock.Any(), "aapl").Return(&provider.Quote{Ticker: "AAPL", Name: "Apple Inc.", Last: "189.84"}, nil)
	store := steppedRecents()
	svc := lookup.New(NewMockSearcher(ctrl), quotes, store)

	// Act
	q, err := svc.Lookup(t.Context(), "aapl")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "189.84", q.Last)
	list := store.List(t.Context())
	require.Len(t, list, 1)
	require.Equal(t, "AAPL", list[0].Symbol)
	require.Equal(t, "Apple Inc.", list[0].Name)
}

func TestLookup_FallsBackToRequestedSymbol(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	quotes.EXPECT().Quote(gomock.Any(), " msft ").Return(&provider.Quote{Name: "Microsoft"}, nil)
	store := steppedRecents()
	svc := lookup.New(NewMockSearcher(ctrl), quotes, store)

	// Act
	_, err := svc.Lookup(t.Context(), " msft ")

	// Assert
	require.NoError(t, err)
	require.Equal(t, "MSFT", store.List(t.Context())[0].Symbol)
}

func TestLookup_NotFoundLeavesRecentsAlone(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	quotes.EXPECT().Quote(gomock.Any(), "ZZZZ").Return(nil, notFound("ZZZZ"))
	store := steppedRecents()
	svc := lookup.New(NewMockSearcher(ctrl), quotes, store)

	// Act
	q, err := svc.Lookup(t.Context(), "ZZZZ")

	// Assert
	require.Nil(t, q)
	require.ErrorIs(t, err, provider.ErrNotFound)
	require.Empty(t, store.List(t.Context()))
}

func TestRecents_EnrichesInOrderAndIsolatesFailures(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	store := steppedRecents()
	ctx := t.Context()
	require.NoError(t, store.Upsert(ctx, "AAPL", "Apple Inc."))
	require.NoError(t, store.Upsert(ctx, "GONE", "Delisted Corp"))
	require.NoError(t, store.Upsert(ctx, "MSFT", "Microsoft"))

	quotes.EXPECT().Quote(gomock.Any(), "AAPL").Return(&provider.Quote{Ticker: "AAPL", Last: "189.84"}, nil)
	quotes.EXPECT().Quote(gomock.Any(), "GONE").Return(nil, notFound("GONE"))
	quotes.EXPECT().Quote(gomock.Any(), "MSFT").Return(&provider.Quote{Ticker: "MSFT", Last: "410.10"}, nil)
	svc := lookup.New(NewMockSearcher(ctrl), quotes, store)

	// Act
	views := svc.Recents(ctx)

	// Assert
	require.Len(t, views, 3)
	require.Equal(t, "MSFT", views[0].Symbol)
	require.Equal(t, "410.10", views[0].Quote.Last)
	require.Equal(t, "GONE", views[1].Symbol)
	require.Nil(t, views[1].Quote)
	require.ErrorIs(t, views[1].Err, provider.ErrNotFound)
	require.Equal(t, "AAPL", views[2].Symbol)
	require.Equal(t, "189.84", views[2].Quote.Last)
}

func TestRecents_Empty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := lookup.New(NewMockSearcher(ctrl), NewMockQuoteSource(ctrl), steppedRecents())

	views := svc.Recents(t.Context())
	require.NotNil(t, views)
	require.Empty(t, views)
}

func TestRecents_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	store := steppedRecents()
	for i := 0; i < recents.MaxRecents; i++ {
		require.NoError(t, store.Upsert(t.Context(), fmt.Sprintf("T%02d", i), ""))
	}

	var inFlight, peak atomic.Int32
	quotes.EXPECT().Quote(gomock.Any(), gomock.Any()).Times(recents.MaxRecents).DoAndReturn(
		func(_ context.Context, ticker string) (*provider.Quote, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return &provider.Quote{Ticker: ticker}, nil
		})
	svc := lookup.New(NewMockSearcher(ctrl), quotes, store, lookup.WithMaxConcurrency(2))

	// Act
	views := svc.Recents(t.Context())

	// Assert
	require.Len(t, views, recents.MaxRecents)
	require.LessOrEqual(t, peak.Load(), int32(2))
	for _, v := range views {
		require.NotNil(t, v.Quote)
		require.Equal(t, v.Symbol, v.Quote.Ticker)
	}
}

func TestRemoveAndClear(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := steppedRecents()
	ctx := t.Context()
	require.NoError(t, store.Upsert(ctx, "AAPL", "Apple Inc."))
	require.NoError(t, store.Upsert(ctx, "MSFT", "Microsoft"))
	svc := lookup.New(NewMockSearcher(ctrl), NewMockQuoteSource(ctrl), store)

	require.NoError(t, svc.Remove(ctx, "aapl"))
	list := store.List(ctx)
	require.Len(t, list, 1)
	require.Equal(t, "MSFT", list[0].Symbol)

	require.NoError(t, svc.Clear(ctx))
	require.Empty(t, store.List(ctx))
}
