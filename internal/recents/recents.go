// Package recents keeps the most-recently-used tickers in a key-value store.
//
// The list lives as one JSON array under a single key that only this package
// knows. It holds at most MaxRecents unique symbols, newest first.
package recents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"tickerlookup/internal/kv"
	"tickerlookup/internal/provider"
)

// MaxRecents caps the list length.
const MaxRecents = 10

const storageKey = "recent-tickers"

// Store reads and mutates the recents list. Mutations are serialised, so two
// concurrent upserts in one process never lose each other's write.
type Store struct {
	kv  kv.Store
	now func() time.Time

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the recents, newest first. An absent, unreadable or corrupt
// value reads as an empty list.
func (s *Store) List(ctx context.Context) []provider.RecentTicker {
	list, err := s.read(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("reading recents failed, treating as empty")
		return []provider.RecentTicker{}
	}
	return list
}

// Upsert moves symbol to the front with a fresh timestamp, dropping any
// earlier entry for it and anything past MaxRecents. Nothing is written when
// the current list cannot be read.
func (s *Store) Upsert(ctx context.Context, symbol, name string) error {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return errors.New("recents: empty symbol")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return err
	}
	next := make([]provider.RecentTicker, 0, MaxRecents)
	next = append(next, provider.RecentTicker{Symbol: symbol, Name: name, Timestamp: s.now().UnixMilli()})
	for _, r := range current {
		if r.Symbol == symbol {
			continue
		}
		next = append(next, r)
	}
	if len(next) > MaxRecents {
		next = next[:MaxRecents]
	}
	return s.write(ctx, next)
}

// Remove drops symbol from the list. The list is written back even when the
// symbol was not present, and not at all when the list cannot be read.
func (s *Store) Remove(ctx context.Context, symbol string) error {
	symbol = strings.TrimSpace(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(ctx)
	if err != nil {
		return err
	}
	next := make([]provider.RecentTicker, 0, len(current))
	for _, r := range current {
		if r.Symbol != symbol {
			next = append(next, r)
		}
	}
	return s.write(ctx, next)
}

// Clear deletes the stored list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, storageKey); err != nil {
		return fmt.Errorf("recents: clear: %w", err)
	}
	return nil
}

// read returns the stored list. A missing or corrupt value is an empty list;
// only a failing store is an error.
func (s *Store) read(ctx context.Context) ([]provider.RecentTicker, error) {
	b, err := s.kv.Get(ctx, storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []provider.RecentTicker{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("recents: read: %w", err)
	}
	var list []provider.RecentTicker
	if err := json.Unmarshal(b, &list); err != nil {
		log.Warn().Err(err).Msg("recents value is corrupt, treating as empty")
		return []provider.RecentTicker{}, nil
	}
	if list == nil {
		list = []provider.RecentTicker{}
	}
	return list, nil
}

func (s *Store) write(ctx context.Context, list []provider.RecentTicker) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("recents: encode: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey, b); err != nil {
		return fmt.Errorf("recents: write: %w", err)
	}
	return nil
}
