package dedupe

import (
	"context"
	"strings"

	"golang.org/x/sync/singleflight"

	"tickerlookup/internal/provider"
)

// Quotes wraps a QuoteSource so that concurrent lookups of the same ticker
// share one upstream request. Nothing is kept once the request completes.
type Quotes struct {
	Source provider.QuoteSource

	group singleflight.Group
}

// Quote returns the quote for ticker, joining an in-flight request for the
// same (case-insensitive) ticker when there is one.
//
// The shared request is not cancelled with the caller that started it; each
// caller stops waiting when its own ctx is done. The upstream client's
// timeout still bounds the request.
func (d *Quotes) Quote(ctx context.Context, ticker string) (*provider.Quote, error) {
	key := strings.ToUpper(strings.TrimSpace(ticker))
	if key == "" {
		return d.Source.Quote(ctx, ticker)
	}
	ch := d.group.DoChan(key, func() (any, error) {
		return d.Source.Quote(context.WithoutCancel(ctx), key)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		q := *res.Val.(*provider.Quote)
		return &q, nil
	}
}
