// Package core defines the ports of the print bridge and the services that
// only depend on them.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
)

// CacheRepository defines the interface for caching operations.
// The core defines it and the data layer provides Redis and in-memory implementations.
type CacheRepository interface {
	// Set stores a value in the cache with the given key and TTL.
	// If TTL is 0, the key will not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value from the cache by key.
	// Returns nil if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes a key from the cache.
	// Returns true if the key was deleted, false if it didn't exist.
	Delete(ctx context.Context, key string) (bool, error)

	// Health checks the health of the cache connection.
	Health(ctx context.Context) error
}

// PrinterStatusCache stores the last probe result of every printer.
type PrinterStatusCache struct {
	cache CacheRepository
	ttl   time.Duration
}

// PrinterStatusCacheOptions bundles dependencies for NewPrinterStatusCache.
type PrinterStatusCacheOptions struct {
	Cache CacheRepository
	TTL   time.Duration
}

// DefaultPrinterStatusTTL keeps a status for a few probe intervals.
const DefaultPrinterStatusTTL = 2 * time.Minute

// NewPrinterStatusCache creates a new PrinterStatusCache.
func NewPrinterStatusCache(opts PrinterStatusCacheOptions) *PrinterStatusCache {
	if opts.Cache == nil {
		panic("PrinterStatusCache requires a CacheRepository")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultPrinterStatusTTL
	}
	return &PrinterStatusCache{cache: opts.Cache, ttl: ttl}
}

// Put stores status under the printer's name.
func (c *PrinterStatusCache) Put(ctx context.Context, status model.PrinterStatus) error {
	if status.Name == "" {
		return nil
	}
	b, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("marshal printer status: %w", err)
	}
	return c.cache.Set(ctx, statusKey(status.Name), b, c.ttl)
}

// Get returns the cached status, or nil when none is cached.
func (c *PrinterStatusCache) Get(ctx context.Context, name string) (*model.PrinterStatus, error) {
	if name == "" {
		return nil, nil
	}
	b, err := c.cache.Get(ctx, statusKey(name))
	if err != nil || len(b) == 0 {
		return nil, err
	}
	var status model.PrinterStatus
	if err := json.Unmarshal(b, &status); err != nil {
		return nil, fmt.Errorf("decode printer status %s: %w", name, err)
	}
	return &status, nil
}

// Invalidate drops the cached status of a printer.
func (c *PrinterStatusCache) Invalidate(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	_, err := c.cache.Delete(ctx, statusKey(name))
	return err
}

// Health reports whether the backing cache is reachable.
func (c *PrinterStatusCache) Health(ctx context.Context) error {
	return c.cache.Health(ctx)
}

func statusKey(name string) string {
	return "printer:status:" + name
}
