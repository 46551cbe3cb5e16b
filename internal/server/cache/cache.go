// Package cache holds looked-up profiles for a short TTL. Two backends are
// provided: an in-process map and redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

var ErrNotFound = errors.New("cache: key not found")

// Cache stores opaque values by key.
type Cache interface {
	// Get returns ErrNotFound when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores v. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, v []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend    string
	DefaultTTL time.Duration
	RedisAddr  string
	Prefix     string
}

// New builds the backend named by cfg.Backend. An empty backend means memory.
func New(cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemory(cfg.DefaultTTL), nil
	case BackendRedis:
		return NewRedis(cfg.RedisAddr, cfg.Prefix, cfg.DefaultTTL), nil
	default:
		return nil, fmt.Errorf("cache: unknown backend %q", cfg.Backend)
	}
}
