package cache

import (
	"context"
	"testing"
	"time"

	"dispatch-planner-service/internal/adapters/travel"
	"dispatch-planner-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *RedisMatrixCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisMatrixCache(rdb)
}

func TestRedisMatrixCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	pair := ports.AddressPair{Origin: "東京", Destination: "札幌"}
	el := ports.MatrixElement{
		Status:          ports.ElementStatusOK,
		DurationText:    "18時間30分",
		DurationSeconds: 66600,
		DistanceText:    "1,150 km",
		DistanceMeters:  1150000,
	}

	require.NoError(t, c.PutElements(ctx, false, map[ports.AddressPair]ports.MatrixElement{pair: el}))

	got, err := c.GetElements(ctx, false, []ports.AddressPair{pair})
	require.NoError(t, err)
	assert.Equal(t, el, got[pair])

	// Toll preference scopes the key space.
	got, err = c.GetElements(ctx, true, []ports.AddressPair{pair})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCachingProviderServesFullyCachedMatrix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	inner := travel.NewMockMatrixProvider([]travel.MockPair{
		{From: "A", To: "B", Meters: 1000, Seconds: 300, DurationText: "5分", DistanceText: "1 km"},
		{From: "B", To: "A", Meters: 1000, Seconds: 320, DurationText: "5分", DistanceText: "1 km"},
	})
	provider := NewCachingMatrixProvider(inner, c)

	req := ports.MatrixRequest{
		Addresses:     []string{"A", "B"},
		DepartureTime: time.Now(),
	}

	first, err := provider.GetMatrix(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.Calls)

	second, err := provider.GetMatrix(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.Calls, "second call must be served from cache")
	assert.Equal(t, first.Rows[0][1], second.Rows[0][1])
	assert.Equal(t, first.Rows[1][0], second.Rows[1][0])
}
