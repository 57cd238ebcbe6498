package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lp452254117/alpha-predator/pkg/config"
)

func newDisabledCache(t *testing.T) *Cache {
	t.Helper()
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return NewCache(client, "test")
}

func TestDisabledCache_GetIsAlwaysMiss(t *testing.T) {
	cache := newDisabledCache(t)

	var dest string
	hit, err := cache.Get(context.Background(), "key", &dest)
	require.NoError(t, err)
	assert.False(t, hit, "disabled cache must report a miss, not an error")
	assert.Empty(t, dest)
}

func TestDisabledCache_SetAndDeleteAreNoops(t *testing.T) {
	cache := newDisabledCache(t)
	ctx := context.Background()

	assert.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	assert.NoError(t, cache.Delete(ctx, "key"))
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "bars:000001.SZ:20240101:20240131", DailyBarsKey("000001.SZ", "20240101", "20240131"))
	assert.Equal(t, "quote:000001.SZ", QuoteKey("000001.SZ"))
	assert.Equal(t, "instrument:600519.SH", InstrumentKey("600519.SH"))
}

func TestTTLOrdering(t *testing.T) {
	// Quotes go stale fastest, daily bars slowest
	assert.Less(t, TTLQuote, TTLInfo)
	assert.Less(t, TTLInfo, TTLDaily)
}
