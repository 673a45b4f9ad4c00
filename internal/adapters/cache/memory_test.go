package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilayShalev/claudpro/internal/domain"
	"github.com/ilayShalev/claudpro/internal/ports"
)

func TestMemoryRouteCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRouteCache(4)

	got, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got, "miss must be nil, nil")

	route := &domain.RouteDetails{VehicleID: 1, TotalTime: 40}
	require.NoError(t, c.Put(ctx, "k1", route))

	got, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 40.0, got.TotalTime)
}

func TestMemoryRouteCacheEvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRouteCache(3)

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("k%d", i)
		require.NoError(t, c.Put(ctx, key, &domain.RouteDetails{VehicleID: i}))
	}

	assert.Equal(t, 3, c.Len())

	for _, key := range []string{"k0", "k1"} {
		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, got, "oldest entries must be evicted")
	}
	for _, key := range []string{"k2", "k3", "k4"} {
		got, err := c.Get(ctx, key)
		require.NoError(t, err)
		assert.NotNil(t, got, "%s should survive", key)
	}
}

func TestMemoryRouteCacheOverwriteKeepsSize(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryRouteCache(3)

	require.NoError(t, c.Put(ctx, "k", &domain.RouteDetails{TotalTime: 1}))
	require.NoError(t, c.Put(ctx, "k", &domain.RouteDetails{TotalTime: 2}))

	assert.Equal(t, 1, c.Len())
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.TotalTime)
}

func TestMemoryGeocodeCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryGeocodeCache()

	got, err := c.Get(ctx, "nowhere")
	require.NoError(t, err)
	assert.Nil(t, got)

	result := ports.GeocodeResult{
		Location:         domain.Coordinates{Lat: 32.0853, Lng: 34.7818},
		FormattedAddress: "Rothschild Blvd 1, Tel Aviv",
	}
	require.NoError(t, c.Put(ctx, "Rothschild Blvd 1", result))

	got, err = c.Get(ctx, "Rothschild Blvd 1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, result, *got)
}
