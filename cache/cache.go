// Package cache is an optional Redis read-through cache for per-title average ratings.
// A Cache without a Redis client is valid and behaves as a permanent miss.
//
// Every title has a generation counter that Invalidate bumps, and InvalidateAll bumps a
// shared epoch. A reader takes a Ticket before reading the database and SetAverage only
// stores the value if neither counter moved in between, so an average read before a
// committed rating change is never cached after that change's invalidation.
package cache

import (
	"context"
	"errors"
	"movieapi/logging"
	"movieapi/metrics"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "rating:avg:"
	genPrefix = "rating:gen:"
	epochKey  = "rating:epoch"
)

var errStale = errors.New("rating cache ticket is stale")

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis at addr. An empty addr or a failed ping yields a disabled cache,
// since averages can always be served from the database.
func New(addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return &Cache{ttl: ttl}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, rating cache disabled")
		_ = rdb.Close()
		return &Cache{ttl: ttl}
	}

	logging.Info().Str("addr", addr).Msg("redis connected")
	return NewWithClient(rdb, ttl)
}

// NewWithClient wraps an existing client.
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Key is case-insensitive, matching title lookups.
func Key(title string) string {
	return keyPrefix + strings.ToLower(title)
}

// Generation counters never expire; an expired counter could match an old ticket again.
func genKey(title string) string {
	return genPrefix + strings.ToLower(title)
}

// Ticket is the invalidation state observed before an average is read from the database.
type Ticket struct {
	title string
	gen   string
	epoch string
	valid bool
}

// Ticket must be taken before the database read whose result will be passed to SetAverage.
func (c *Cache) Ticket(ctx context.Context, title string) Ticket {
	if !c.Enabled() {
		return Ticket{}
	}

	vals, err := c.rdb.MGet(ctx, genKey(title), epochKey).Result()
	if err != nil {
		logging.Warn().Err(err).Msg("rating cache ticket read failed")
		return Ticket{}
	}
	return Ticket{title: title, gen: counter(vals[0]), epoch: counter(vals[1]), valid: true}
}

func counter(v interface{}) string {
	s, _ := v.(string)
	return s
}

// GetAverage returns the cached average for title.
func (c *Cache) GetAverage(ctx context.Context, title string) (float64, bool) {
	if !c.Enabled() {
		return 0, false
	}

	raw, err := c.rdb.Get(ctx, Key(title)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Warn().Err(err).Msg("rating cache read failed")
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return 0, false
	}

	avg, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return 0, false
	}

	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return avg, true
}

// SetAverage caches avg under the ticket's title unless an invalidation happened since
// the ticket was taken.
func (c *Cache) SetAverage(ctx context.Context, t Ticket, avg float64) {
	if !c.Enabled() || !t.valid {
		return
	}

	gen := genKey(t.title)
	value := strconv.FormatFloat(avg, 'f', -1, 64)
	err := c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		vals, err := tx.MGet(ctx, gen, epochKey).Result()
		if err != nil {
			return err
		}
		if counter(vals[0]) != t.gen || counter(vals[1]) != t.epoch {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(t.title), value, c.ttl)
			return nil
		})
		return err
	}, gen, epochKey)

	switch {
	case err == nil:
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		logging.Debug().Str("title", t.title).Msg("rating cache write skipped after invalidation")
	default:
		logging.Warn().Err(err).Msg("rating cache write failed")
	}
}

// Invalidate drops cached averages for the given titles and bumps their generations.
// Call it after the transaction that changed them has committed.
func (c *Cache) Invalidate(ctx context.Context, titles ...string) {
	if !c.Enabled() || len(titles) == 0 {
		return
	}

	keys := make([]string, 0, len(titles))
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, title := range titles {
			pipe.Incr(ctx, genKey(title))
			pipe.Del(ctx, Key(title))
			keys = append(keys, Key(title))
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Strs("keys", keys).Msg("rating cache invalidation failed")
	}
}

// InvalidateAll drops every cached average, e.g. after a bulk reconciliation.
func (c *Cache) InvalidateAll(ctx context.Context) {
	if !c.Enabled() {
		return
	}

	if err := c.rdb.Incr(ctx, epochKey).Err(); err != nil {
		logging.Warn().Err(err).Msg("rating cache epoch bump failed")
		return
	}

	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logging.Warn().Err(err).Msg("rating cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logging.Warn().Err(err).Int("keys", len(keys)).Msg("rating cache flush failed")
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
