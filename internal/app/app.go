// Package app wires the clients, the recents store and the lookup service
// from a config.
package app

import (
	"fmt"
	"time"

	"tickerlookup/internal/config"
	"tickerlookup/internal/httpx"
	"tickerlookup/internal/kv"
	"tickerlookup/internal/logger"
	"tickerlookup/internal/lookup"
	"tickerlookup/internal/provider/dedupe"
	"tickerlookup/internal/provider/yahoo"
	"tickerlookup/internal/provider/zacks"
	"tickerlookup/internal/recents"
)

type App struct {
	Service *lookup.Service
	Store   kv.Store
}

// InitLogger configures the global logger from cfg.Log. verbose forces the
// debug level.
func InitLogger(cfg config.Config, service string, verbose bool) error {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return logger.Init(logger.Config{
		Level:         level,
		Format:        cfg.Log.Format,
		FileEnabled:   cfg.Log.FileEnabled,
		FilePath:      cfg.Log.Dir,
		RotationSize:  cfg.Log.RotationSize,
		RetentionDays: cfg.Log.RetentionDays,
		ServiceName:   service,
	})
}

// New opens the configured store and builds the service on top of it.
// Close releases the store.
func New(cfg config.Config) (*App, error) {
	store, err := kv.Open(kv.Options{
		Backend:  cfg.Store.Backend,
		Path:     cfg.Store.Path,
		RedisURL: cfg.Store.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &App{Service: newService(cfg, store), Store: store}, nil
}

func newService(cfg config.Config, store kv.Store) *lookup.Service {
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	searchOpts := []yahoo.SearchClientOption{
		yahoo.WithBaseURL(cfg.Upstream.SearchBaseURL),
		yahoo.WithHTTPClient(httpClient),
	}
	if cfg.Upstream.UserAgent != "" {
		httpClient.UserAgent = cfg.Upstream.UserAgent
		searchOpts = append(searchOpts, yahoo.WithUserAgent(cfg.Upstream.UserAgent))
	}

	search := yahoo.NewSearchClient(searchOpts...)
	quotes := zacks.NewQuoteClient(
		zacks.WithBaseURL(cfg.Upstream.QuoteBaseURL),
		zacks.WithHTTPClient(httpClient),
	)
	return lookup.New(
		search,
		&dedupe.Quotes{Source: quotes},
		recents.New(store),
		lookup.WithMaxConcurrency(cfg.Enrich.MaxConcurrency),
	)
}

func (a *App) Close() error {
	return a.Store.Close()
}
