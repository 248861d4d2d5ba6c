package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/lakbayan/tourism-portal/internal/domain"
)

// Channel is the cache surface for one resource kind. It owns the list key
// and the per-id detail keys, so the code that reads a list and the code
// that invalidates it after a mutation go through the same object.
//
// Store errors are logged and treated as misses: a broken cache degrades
// to extra upstream fetches, never to a failed page.
type Channel[T domain.Record[T]] struct {
	kind  domain.Kind
	store Store
	ttl   time.Duration
	log   *slog.Logger
}

// NewChannel builds the channel for kind over store. ttl is both the
// freshness window and the request de-duplication window.
func NewChannel[T domain.Record[T]](kind domain.Kind, store Store, ttl time.Duration, log *slog.Logger) *Channel[T] {
	return &Channel[T]{kind: kind, store: store, ttl: ttl, log: log}
}

// Kind returns the resource kind this channel serves.
func (c *Channel[T]) Kind() domain.Kind { return c.kind }

// ListKey returns the cache key for the kind's collection.
func (c *Channel[T]) ListKey() string {
	return "portal:" + string(c.kind) + ":list"
}

// DetailKey returns the cache key for a single record.
func (c *Channel[T]) DetailKey(id string) string {
	return "portal:" + string(c.kind) + ":detail:" + id
}

// List returns the cached collection, if fresh.
func (c *Channel[T]) List(ctx context.Context) ([]T, bool) {
	raw, ok, err := c.store.Get(ctx, c.ListKey())
	if err != nil {
		c.log.Warn("cache read failed", "key", c.ListKey(), "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		c.log.Warn("cache entry corrupt", "key", c.ListKey(), "error", err)
		return nil, false
	}
	return records, true
}

// PutList stores the collection. A cancelled context means the caller
// navigated away before the fetch settled; the late result is dropped
// rather than written.
func (c *Channel[T]) PutList(ctx context.Context, records []T) {
	if ctx.Err() != nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		c.log.Warn("cache encode failed", "key", c.ListKey(), "error", err)
		return
	}
	if err := c.store.Set(ctx, c.ListKey(), raw, c.ttl); err != nil {
		c.log.Warn("cache write failed", "key", c.ListKey(), "error", err)
	}
}

// Detail returns the cached record for id, if fresh.
func (c *Channel[T]) Detail(ctx context.Context, id string) (T, bool) {
	var record T
	raw, ok, err := c.store.Get(ctx, c.DetailKey(id))
	if err != nil {
		c.log.Warn("cache read failed", "key", c.DetailKey(id), "error", err)
		return record, false
	}
	if !ok {
		return record, false
	}
	if err := json.Unmarshal(raw, &record); err != nil {
		c.log.Warn("cache entry corrupt", "key", c.DetailKey(id), "error", err)
		return record, false
	}
	return record, true
}

// PutDetail stores a single record under its own id. Late results after
// cancellation are dropped, same as PutList.
func (c *Channel[T]) PutDetail(ctx context.Context, record T) {
	if ctx.Err() != nil {
		return
	}
	key := c.DetailKey(record.RecordID())
	raw, err := json.Marshal(record)
	if err != nil {
		c.log.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// InvalidateList marks the collection stale. Safe to call any number of
// times; the next List miss triggers a fresh fetch.
func (c *Channel[T]) InvalidateList(ctx context.Context) {
	if err := c.store.Delete(ctx, c.ListKey()); err != nil {
		c.log.Warn("cache invalidate failed", "key", c.ListKey(), "error", err)
	}
}

// InvalidateDetail marks one record stale (and, for deletes, drops it).
func (c *Channel[T]) InvalidateDetail(ctx context.Context, id string) {
	if err := c.store.Delete(ctx, c.DetailKey(id)); err != nil {
		c.log.Warn("cache invalidate failed", "key", c.DetailKey(id), "error", err)
	}
}
