package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/careseek/booking-backend/internal/domain/providers"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryAdapter is an in-process StoreProvider for development and tests.
// Expiry is checked lazily on access.
type MemoryAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryAdapter creates an empty in-process store.
func NewMemoryAdapter() providers.StoreProvider {
	return &MemoryAdapter{entries: make(map[string]memoryEntry)}
}

func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mu.RLock()
	entry, ok := a.entries[key]
	a.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("key not found: %s", key))
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (a *MemoryAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	a.mu.Lock()
	a.entries[key] = memoryEntry{value: stored, expiresAt: expiresAt}
	a.mu.Unlock()
	return nil
}

func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mu.Lock()
	delete(a.entries, key)
	a.mu.Unlock()
	return nil
}

func (a *MemoryAdapter) Exists(ctx context.Context, key string) (bool, error) {
	a.mu.RLock()
	entry, ok := a.entries[key]
	a.mu.RUnlock()
	return ok && !entry.expired(time.Now()), nil
}
