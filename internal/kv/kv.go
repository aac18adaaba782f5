// Package kv is the durable key-value storage behind the recents list.
package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is an opaque key-value store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend  string // bolt, redis or memory
	Path     string // bolt file
	RedisURL string // redis://...
}

// Open returns the Store described by opts.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", "bolt", "bbolt":
		return OpenBolt(opts.Path)
	case "redis":
		return OpenRedis(opts.RedisURL)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", opts.Backend)
	}
}
