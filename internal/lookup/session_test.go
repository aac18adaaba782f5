package lookup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tickerlookup/internal/lookup"
	"tickerlookup/internal/provider"
)

type lookupResult struct {
	quote   *provider.Quote
	current bool
	err     error
}

func TestSession_StaleLookupIsDiscarded(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	started := make(chan struct{})
	release := make(chan struct{})
	quotes.EXPECT().Quote(gomock.Any(), "AAPL").DoAndReturn(func(context.Context, string) (*provider.Quote, error) {
		close(started)
		<-release
		return &provider.Quote{Ticker: "AAPL", Name: "Apple Inc."}, nil
	})
	quotes.EXPECT().Quote(gomock.Any(), "MSFT").Return(&provider.Quote{Ticker: "MSFT", Name: "Microsoft"}, nil)
	store := steppedRecents()
	ss := lookup.New(NewMockSearcher(ctrl), quotes, store).NewSession()

	// Act
	first := make(chan lookupResult, 1)
	go func() {
		q, current, err := ss.Lookup(t.Context(), "AAPL")
		first <- lookupResult{q, current, err}
	}()
	<-started
	q, current, err := ss.Lookup(t.Context(), "MSFT")
	close(release)
	stale := <-first

	// Assert
	require.NoError(t, err)
	require.True(t, current)
	require.Equal(t, "MSFT", q.Ticker)

	require.False(t, stale.current)
	require.Nil(t, stale.quote)
	require.NoError(t, stale.err)

	list := store.List(t.Context())
	require.Len(t, list, 1)
	require.Equal(t, "MSFT", list[0].Symbol)
}

func TestSession_CurrentLookupReportsError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	quotes := NewMockQuoteSource(ctrl)
	quotes.EXPECT().Quote(gomock.Any(), "ZZZZ").Return(nil, notFound("ZZZZ"))
	ss := lookup.New(NewMockSearcher(ctrl), quotes, steppedRecents()).NewSession()

	q, current, err := ss.Lookup(t.Context(), "ZZZZ")
	require.Nil(t, q)
	require.True(t, current)
	require.ErrorIs(t, err, provider.ErrNotFound)
}

func TestSession_StaleSearchIsFlagged(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	searcher := NewMockSearcher(ctrl)
	started := make(chan struct{})
	release := make(chan struct{})
	searcher.EXPECT().Search(gomock.Any(), "app").DoAndReturn(func(context.Context, string) ([]provider.TickerSearchResult, error) {
		close(started)
		<-release
		return []provider.TickerSearchResult{{Symbol: "APP", Name: "AppLovin"}}, nil
	})
	searcher.EXPECT().Search(gomock.Any(), "apple").Return([]provider.TickerSearchResult{{Symbol: "AAPL", Name: "Apple Inc."}}, nil)
	ss := lookup.New(searcher, NewMockQuoteSource(ctrl), steppedRecents()).NewSession()

	// Act
	firstCurrent := make(chan bool, 1)
	go func() {
		_, current, _ := ss.Search(t.Context(), "app")
		firstCurrent <- current
	}()
	<-started
	results, current, err := ss.Search(t.Context(), "apple")
	close(release)

	// Assert
	require.NoError(t, err)
	require.True(t, current)
	require.Equal(t, "AAPL", results[0].Symbol)
	require.False(t, <-firstCurrent)
}

func TestSession_SearchAsyncOrdersByIssue(t *testing.T) {
	t.Parallel()

	// Arrange
	ctrl := gomock.NewController(t)
	searcher := NewMockSearcher(ctrl)
	release := make(chan struct{})
	searcher.EXPECT().Search(gomock.Any(), "app").DoAndReturn(func(context.Context, string) ([]provider.TickerSearchResult, error) {
		<-release
		return []provider.TickerSearchResult{{Symbol: "APP"}}, nil
	})
	searcher.EXPECT().Search(gomock.Any(), "apple").Return([]provider.TickerSearchResult{{Symbol: "AAPL"}}, nil)
	ss := lookup.New(searcher, NewMockQuoteSource(ctrl), steppedRecents()).NewSession()

	// Act
	first := ss.SearchAsync(t.Context(), "app")
	second := ss.SearchAsync(t.Context(), "apple")
	close(release)
	a, b := <-first, <-second

	// Assert
	require.Equal(t, "app", a.Query)
	require.False(t, a.Current)
	require.Equal(t, "apple", b.Query)
	require.True(t, b.Current)
	require.Equal(t, "AAPL", b.Results[0].Symbol)
}
