// Package cache holds short-lived state shared by API instances: revoked
// access tokens and rate-limit counters. Redis backs it in production and a
// process-local map stands in when no Redis is configured.
package cache

import (
	"context"
	"time"
)

// RevocationList remembers logged-out token ids until they would expire anyway.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Counter counts hits per key within a fixed window.
type Counter interface {
	// Incr increments key and returns the new count. The key expires
	// window after its first increment.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Cache is the full set of capabilities a backend provides.
type Cache interface {
	RevocationList
	Counter
}
