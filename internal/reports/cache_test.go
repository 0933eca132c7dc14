package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute), func() {
		_ = client.Close()
		mr.Close()
	}
}

func TestCacheVersioning(t *testing.T) {
	cache, cleanup := newTestCache(t)
	defer cleanup()

	ctx := context.Background()
	ver, err := cache.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), ver)

	key1, err := cache.BuildKey(ctx, "reports", "LOW_STOCK")
	require.NoError(t, err)
	require.Equal(t, "reports:LOW_STOCK:1", key1)

	require.NoError(t, cache.Bump(ctx))
	key2, err := cache.BuildKey(ctx, "reports", "LOW_STOCK")
	require.NoError(t, err)
	require.NotEqual(t, key1, key2)
}

func TestCacheFetchJSON(t *testing.T) {
	cache, cleanup := newTestCache(t)
	defer cleanup()

	ctx := context.Background()
	var loads int
	loader := func(context.Context) (interface{}, error) {
		loads++
		return map[string]int{"count": 3}, nil
	}

	var out map[string]int
	require.NoError(t, cache.FetchJSON(ctx, "k", &out, loader))
	require.Equal(t, 3, out["count"])
	require.Equal(t, 1, loads)

	out = nil
	require.NoError(t, cache.FetchJSON(ctx, "k", &out, loader))
	require.Equal(t, 3, out["count"])
	require.Equal(t, 1, loads)
}

func TestCacheFetchJSONPropagatesLoaderError(t *testing.T) {
	cache, cleanup := newTestCache(t)
	defer cleanup()

	wantErr := errors.New("load failed")
	var out map[string]int
	err := cache.FetchJSON(context.Background(), "k", &out, func(context.Context) (interface{}, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestCacheNilClientDegradesToLoader(t *testing.T) {
	var cache *Cache
	var loads int
	var out int
	loader := func(context.Context) (interface{}, error) {
		loads++
		return 7, nil
	}

	require.NoError(t, cache.FetchJSON(context.Background(), "k", &out, loader))
	require.NoError(t, cache.FetchJSON(context.Background(), "k", &out, loader))
	require.Equal(t, 7, out)
	// Without a backing client every fetch loads.
	require.Equal(t, 2, loads)
	require.NoError(t, cache.Bump(context.Background()))
}
