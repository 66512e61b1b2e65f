package dashboards

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type summaryFixture struct {
	Count int `json:"count"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute), mr
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	cache, _ := newTestCache(t)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return summaryFixture{Count: 7}, nil
	}

	var first summaryFixture
	require.NoError(t, cache.FetchJSON(context.Background(), "k1", &first, loader))
	require.Equal(t, 7, first.Count)

	var second summaryFixture
	require.NoError(t, cache.FetchJSON(context.Background(), "k1", &second, loader))
	require.Equal(t, 7, second.Count)
	require.Equal(t, int32(1), calls.Load())
}

func TestFetchJSONExpiredEntryReloads(t *testing.T) {
	cache, mr := newTestCache(t)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return summaryFixture{Count: int(calls.Load())}, nil
	}

	var out summaryFixture
	require.NoError(t, cache.FetchJSON(context.Background(), "k1", &out, loader))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, cache.FetchJSON(context.Background(), "k1", &out, loader))
	require.Equal(t, int32(2), calls.Load())
	require.Equal(t, 2, out.Count)
}

func TestFetchJSONCollapsesConcurrentMisses(t *testing.T) {
	cache, _ := newTestCache(t)
	var calls atomic.Int32
	gate := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-gate
		return summaryFixture{Count: 1}, nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out summaryFixture
			errs[i] = cache.FetchJSON(context.Background(), "hot", &out, loader)
		}(i)
	}
	// Give the goroutines time to pile onto the same key, then release.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), calls.Load())
}

func TestFetchJSONLoaderError(t *testing.T) {
	cache, _ := newTestCache(t)
	wantErr := errors.New("query failed")

	var out summaryFixture
	err := cache.FetchJSON(context.Background(), "bad", &out, func(context.Context) (any, error) {
		return nil, wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestFetchJSONNilClientStillLoads(t *testing.T) {
	cache := NewCache(nil, time.Minute)
	var out summaryFixture
	require.NoError(t, cache.FetchJSON(context.Background(), "k", &out, func(context.Context) (any, error) {
		return summaryFixture{Count: 3}, nil
	}))
	require.Equal(t, 3, out.Count)
}
