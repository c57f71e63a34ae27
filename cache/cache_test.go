package cache

import (
	"context"
	"movieapi/metrics"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func cacheRequests(result string) float64 {
	return testutil.ToFloat64(metrics.CacheRequests.WithLabelValues(result))
}

func TestKeyIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "rating:avg:inception", Key("Inception"))
	assert.Equal(t, Key("INCEPTION"), Key("inception"))
}

func TestDisabledCacheIsAPermanentMiss(t *testing.T) {
	c := New("", time.Minute)
	ctx := context.Background()

	assert.False(t, c.Enabled())
	c.SetAverage(ctx, c.Ticket(ctx, "Dune"), 4)
	_, ok := c.GetAverage(ctx, "Dune")
	assert.False(t, ok)
	c.Invalidate(ctx, "Dune")
	c.InvalidateAll(ctx)
	assert.NoError(t, c.Close())
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	c.SetAverage(context.Background(), c.Ticket(context.Background(), "Dune"), 4)
	_, ok := c.GetAverage(context.Background(), "Dune")
	assert.False(t, ok)
	c.Invalidate(context.Background(), "Dune")
	c.InvalidateAll(context.Background())
}

func TestUnreachableRedisFallsBackToMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewWithClient(rdb, time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	c.SetAverage(ctx, c.Ticket(ctx, "Dune"), 4)
	_, ok := c.GetAverage(ctx, "Dune")
	assert.False(t, ok)
	c.Invalidate(ctx, "Dune")
	c.InvalidateAll(ctx)
}

func TestNewConnectsToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	assert.True(t, c.Enabled())
}

func TestSetThenGetAverage(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	hits, misses := cacheRequests("hit"), cacheRequests("miss")

	_, ok := c.GetAverage(ctx, "Dune")
	assert.False(t, ok)
	assert.Equal(t, misses+1, cacheRequests("miss"))

	c.SetAverage(ctx, c.Ticket(ctx, "Dune"), 4.5)
	avg, ok := c.GetAverage(ctx, "DUNE")
	require.True(t, ok)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, hits+1, cacheRequests("hit"))

	assert.Equal(t, time.Minute, mr.TTL(Key("Dune")))
}

func TestInvalidateIsCaseInsensitive(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	c.SetAverage(ctx, c.Ticket(ctx, "Dune"), 4)
	c.SetAverage(ctx, c.Ticket(ctx, "Heat"), 7)
	c.Invalidate(ctx, "dUNE")

	_, ok := c.GetAverage(ctx, "Dune")
	assert.False(t, ok)
	avg, ok := c.GetAverage(ctx, "Heat")
	require.True(t, ok)
	assert.Equal(t, 7.0, avg)
}

func TestSetAfterInvalidateIsDropped(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	// A reader takes its ticket and reads 5 from the database, then a rating
	// commits and invalidates before the reader gets to store its value.
	ticket := c.Ticket(ctx, "Dune")
	c.Invalidate(ctx, "Dune")
	c.SetAverage(ctx, ticket, 5)

	_, ok := c.GetAverage(ctx, "Dune")
	assert.False(t, ok)

	c.SetAverage(ctx, c.Ticket(ctx, "Dune"), 4)
	avg, ok := c.GetAverage(ctx, "Dune")
	require.True(t, ok)
	assert.Equal(t, 4.0, avg)
}

func TestSetAfterInvalidateAllIsDropped(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	ticket := c.Ticket(ctx, "Dune")
	c.InvalidateAll(ctx)
	c.SetAverage(ctx, ticket, 5)

	_, ok := c.GetAverage(ctx, "Dune")
	assert.False(t, ok)
}

func TestInvalidateAllDropsOnlyAverages(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	for i, title := range []string{"Dune", "Heat", "Arrival"} {
		c.SetAverage(ctx, c.Ticket(ctx, title), float64(i+1))
	}
	require.NoError(t, mr.Set("session:abc", "keep"))

	c.InvalidateAll(ctx)

	for _, title := range []string{"Dune", "Heat", "Arrival"} {
		assert.False(t, mr.Exists(Key(title)), title)
	}
	assert.True(t, mr.Exists("session:abc"))
}
