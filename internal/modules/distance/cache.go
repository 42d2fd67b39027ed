// README: Route distance cache backed by Redis. Keyed by the sorted postal
// code pair so A->B and B->A share one entry.
package distance

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	routeKeyPrefix = "distance:%s:%s:%s"
	// Road networks change slowly; resolved distances stay valid for weeks.
	defaultCacheTTL = 30 * 24 * time.Hour
)

type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{redis: rdb, ttl: ttl}
}

// Get returns the cached distance for a postal pair, if present.
func (c *Cache) Get(ctx context.Context, profile, postalA, postalB string) (float64, bool, error) {
	val, err := c.redis.Get(ctx, routeKey(profile, postalA, postalB)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	km, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, err
	}
	return km, true, nil
}

// Put stores a provider-resolved distance. Fallback estimates are never cached.
func (c *Cache) Put(ctx context.Context, profile, postalA, postalB string, km float64) error {
	return c.redis.Set(ctx, routeKey(profile, postalA, postalB),
		strconv.FormatFloat(km, 'f', -1, 64), c.ttl).Err()
}

func routeKey(profile, postalA, postalB string) string {
	if postalB < postalA {
		postalA, postalB = postalB, postalA
	}
	return fmt.Sprintf(routeKeyPrefix, postalA, postalB, profile)
}
