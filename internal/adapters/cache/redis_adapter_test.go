package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "github.com/careseek/booking-backend/internal/infrastructure/clients/redis"
	apperrors "github.com/careseek/booking-backend/pkg/errors"
)

func newTestRedisAdapter(t *testing.T) (*miniredis.Miniredis, *RedisAdapter) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisclient.NewClientFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisAdapter(client).(*RedisAdapter)
}

func TestRedisAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("Set then get round-trips", func(t *testing.T) {
		_, adapter := newTestRedisAdapter(t)

		require.NoError(t, adapter.Set(ctx, "screen:abc", []byte(`{"id":"abc"}`), time.Minute))

		value, err := adapter.Get(ctx, "screen:abc")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"id":"abc"}`), value)

		exists, err := adapter.Exists(ctx, "screen:abc")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Missing key is a not-found error", func(t *testing.T) {
		_, adapter := newTestRedisAdapter(t)

		_, err := adapter.Get(ctx, "screen:missing")
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	})

	t.Run("Expired keys disappear", func(t *testing.T) {
		mr, adapter := newTestRedisAdapter(t)

		require.NoError(t, adapter.Set(ctx, "screen:ttl", []byte("x"), time.Minute))
		mr.FastForward(2 * time.Minute)

		_, err := adapter.Get(ctx, "screen:ttl")
		assert.Error(t, err)

		exists, err := adapter.Exists(ctx, "screen:ttl")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete removes the key", func(t *testing.T) {
		_, adapter := newTestRedisAdapter(t)

		require.NoError(t, adapter.Set(ctx, "screen:gone", []byte("x"), 0))
		require.NoError(t, adapter.Delete(ctx, "screen:gone"))

		exists, err := adapter.Exists(ctx, "screen:gone")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestMemoryAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("Round-trip and expiry", func(t *testing.T) {
		adapter := NewMemoryAdapter()

		require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

		value, err := adapter.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), value)

		time.Sleep(20 * time.Millisecond)
		_, err = adapter.Get(ctx, "k")
		assert.Error(t, err)
	})

	t.Run("Stored value is isolated from the caller's slice", func(t *testing.T) {
		adapter := NewMemoryAdapter()

		buf := []byte("original")
		require.NoError(t, adapter.Set(ctx, "k", buf, 0))
		buf[0] = 'X'

		value, err := adapter.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), value)
	})
}
