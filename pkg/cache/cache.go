// Package cache implements the result caches used to avoid recomputing
// a diagram's layout or re-rendering an artifact when neither the DDF
// input nor the render options have changed.
package cache

import (
	"context"
	"time"
)

// Cache is the storage contract every backend (Null, File, Redis)
// implements. Get reports a cache miss as (nil, false, nil), never as
// an error; only a genuine backend failure is returned as err.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTL defaults for each cached pipeline stage.
const (
	TTLDiagram  = 1 * time.Hour
	TTLArtifact = 24 * time.Hour
)
