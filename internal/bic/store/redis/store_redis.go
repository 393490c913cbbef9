// Package redis provides a read-through cache in front of another BIC
// directory. Recommended in front of the postgres store for distributed
// deployments with hot lookup paths.
package redis

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"schwifty/internal/bic"
	"schwifty/pkg/domain"
)

var lookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "schwifty_bic_cache_lookup_duration_ms",
	Help:    "Latency of cached BIC lookups in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const (
	// Redis key prefix for cached associations.
	cacheKeyPrefix = "bic:"

	defaultTTL = 24 * time.Hour
)

// Cache decorates a bic.Directory with redis-backed memoization. Cache
// trouble never fails a lookup; the request falls through to the inner
// directory.
type Cache struct {
	client *redis.Client
	next   bic.Directory
	ttl    time.Duration
}

// CacheOption configures a Cache instance.
type CacheOption func(*Cache)

// WithTTL overrides the default 24h entry lifetime.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = ttl }
}

// NewCache constructs the read-through cache around next.
func NewCache(client *redis.Client, next bic.Directory, opts ...CacheOption) *Cache {
	c := &Cache{client: client, next: next, ttl: defaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LookupByBankCode implements bic.Directory.
func (c *Cache) LookupByBankCode(ctx context.Context, countryCode domain.CountryCode, bankCode string) (bic.BIC, error) {
	start := time.Now()
	defer func() {
		lookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	key := cacheKey(countryCode, bankCode)

	// redis.Nil and transport errors both fall through to the inner
	// directory; cache unavailability is not a lookup failure.
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		if b, perr := bic.Parse(cached); perr == nil {
			return b, nil
		}
		// Unparseable cache entries are dropped and refetched.
		_ = c.client.Del(ctx, key).Err()
	}

	b, err := c.next.LookupByBankCode(ctx, countryCode, bankCode)
	if err != nil {
		return bic.BIC{}, err
	}
	_ = c.client.Set(ctx, key, b.String(), c.ttl).Err()
	return b, nil
}

func cacheKey(countryCode domain.CountryCode, bankCode string) string {
	return cacheKeyPrefix + string(countryCode) + ":" + bankCode
}
