package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch-planner-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// Durations are traffic-dependent, so cached cells expire quickly.
const matrixTTL = 15 * time.Minute

// RedisMatrixCache is a Redis-backed cache for individual matrix cells.
// Keys are scoped by the toll preference since routes differ between the two.
type RedisMatrixCache struct {
	rdb *redis.Client
}

func NewRedisMatrixCache(rdb *redis.Client) *RedisMatrixCache {
	return &RedisMatrixCache{rdb: rdb}
}

func key(avoidTolls bool, p ports.AddressPair) string {
	tolls := "tolls"
	if avoidTolls {
		tolls = "notolls"
	}
	return fmt.Sprintf("travel:%s:%s|%s", tolls, p.Origin, p.Destination)
}

// GetElements fetches cached cells for the given pairs; misses are absent
// from the returned map.
func (c *RedisMatrixCache) GetElements(
	ctx context.Context,
	avoidTolls bool,
	pairs []ports.AddressPair,
) (map[ports.AddressPair]ports.MatrixElement, error) {
	if c.rdb == nil {
		return nil, errors.New("matrix cache: redis client is nil")
	}

	if len(pairs) == 0 {
		return map[ports.AddressPair]ports.MatrixElement{}, nil
	}

	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = key(avoidTolls, p)
	}

	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get matrix cache: mget: %w", err)
	}

	out := make(map[ports.AddressPair]ports.MatrixElement, len(pairs))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var el ports.MatrixElement
		if err := json.Unmarshal([]byte(raw), &el); err != nil {
			// A corrupt entry behaves like a miss.
			continue
		}
		out[pairs[i]] = el
	}

	return out, nil
}

// PutElements stores cells with the cache TTL.
func (c *RedisMatrixCache) PutElements(
	ctx context.Context,
	avoidTolls bool,
	elements map[ports.AddressPair]ports.MatrixElement,
) error {
	if c.rdb == nil {
		return errors.New("matrix cache: redis client is nil")
	}

	if len(elements) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for p, el := range elements {
		raw, err := json.Marshal(el)
		if err != nil {
			return fmt.Errorf("put matrix cache: marshal element %q -> %q: %w", p.Origin, p.Destination, err)
		}
		pipe.Set(ctx, key(avoidTolls, p), raw, matrixTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put matrix cache: pipeline exec: %w", err)
	}

	return nil
}
