package providers

import (
	"context"
	"time"
)

// StoreProvider defines the interface for keyed byte storage with expiry. It
// backs booking screen sessions and login sessions; implementations exist for
// Redis and in-process memory.
type StoreProvider interface {
	// Get retrieves a value, returning a NOT_FOUND error when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero TTL stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists
	Exists(ctx context.Context, key string) (bool, error)
}
