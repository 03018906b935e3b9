package redis

import (
	"context"
	"testing"

	"currency-converter/internal/custom_err"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStorage(context.Background(), &goredis.Options{Addr: mr.Addr()}, "currency-converter:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisStorage_GetSet(t *testing.T) {
	store, mr := newTestStorage(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "exchange_rates")
	assert.ErrorIs(t, err, custom_err.ErrNotFound)

	require.NoError(t, store.Set(ctx, "exchange_rates", `{"base":"USD"}`))
	require.NoError(t, store.Set(ctx, "exchange_rates", `{"base":"EUR"}`))

	value, err := store.Get(ctx, "exchange_rates")
	require.NoError(t, err)
	assert.Equal(t, `{"base":"EUR"}`, value)

	raw, err := mr.Get("currency-converter:exchange_rates")
	require.NoError(t, err)
	assert.Equal(t, `{"base":"EUR"}`, raw)
	assert.Zero(t, mr.TTL("currency-converter:exchange_rates"))
}

func TestRedisStorage_ServerDown(t *testing.T) {
	store, mr := newTestStorage(t)
	ctx := context.Background()
	mr.Close()

	_, err := store.Get(ctx, "exchange_rates")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, custom_err.ErrNotFound)

	assert.Error(t, store.Set(ctx, "exchange_rates", "v"))
}

func TestNewRedisStorage_PingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStorage(context.Background(), &goredis.Options{Addr: addr, MaxRetries: -1}, "")
	assert.Error(t, err)
}
