package listcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type page struct {
	Names []string `json:"names"`
	Total int      `json:"total"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

func TestFetchJSONCachesByKey(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	key, err := cache.Key(ctx, "animals", "species=CAT")
	require.NoError(t, err)
	assert.Equal(t, "list:animals:species=CAT:1", key)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return page{Names: []string{"Tigrou"}, Total: 1}, nil
	}

	var first, second page
	require.NoError(t, cache.FetchJSON(ctx, key, &first, loader))
	require.NoError(t, cache.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestBumpChangesKeys(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	before, err := cache.Key(ctx, "animals", "")
	require.NoError(t, err)
	assert.Equal(t, "list:animals:-:1", before)

	ver, err := cache.Bump(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)

	after, err := cache.Key(ctx, "animals", "")
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFetchJSONLoaderError(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	boom := errors.New("boom")

	var dest page
	err := cache.FetchJSON(ctx, "list:x:-:1", &dest, func(context.Context) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, IsLoadError(err))
	assert.False(t, mr.Exists("list:x:-:1"))
}

func TestFetchJSONCacheFailureIsNotLoadError(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	var dest page
	err := cache.FetchJSON(context.Background(), "list:x:-:1", &dest, func(context.Context) (any, error) {
		return page{}, nil
	})
	require.Error(t, err)
	assert.False(t, IsLoadError(err))
}

func TestFetchJSONSharedFillSurvivesFirstCallerCancel(t *testing.T) {
	cache, mr := newTestCache(t)
	key := "list:animals:-:1"
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var loaderErr error
	loader := func(ctx context.Context) (any, error) {
		once.Do(func() { close(started) })
		<-release
		loaderErr = ctx.Err()
		return page{Names: []string{"Tigrou"}, Total: 1}, nil
	}

	first, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan error, 1)
	go func() {
		var dest page
		firstDone <- cache.FetchJSON(first, key, &dest, loader)
	}()
	<-started

	secondDone := make(chan error, 1)
	var second page
	go func() {
		secondDone <- cache.FetchJSON(context.Background(), key, &second, loader)
	}()
	// let the second caller join the in-flight fill
	time.Sleep(50 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstDone, context.Canceled)

	close(release)
	require.NoError(t, <-secondDone)
	assert.NoError(t, loaderErr)
	assert.Equal(t, page{Names: []string{"Tigrou"}, Total: 1}, second)
	assert.True(t, mr.Exists(key))
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	key, err := cache.Key(ctx, "exhibitors", "sort=NAME")
	require.NoError(t, err)
	assert.Equal(t, "list:exhibitors:sort=NAME", key)

	var dest page
	require.NoError(t, cache.FetchJSON(ctx, key, &dest, func(context.Context) (any, error) {
		return page{Total: 3}, nil
	}))
	assert.Equal(t, 3, dest.Total)

	ver, err := cache.Bump(ctx)
	assert.NoError(t, err)
	assert.Zero(t, ver)
}

func TestLocalLayerServesRecentPages(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return page{Total: calls}, nil
	}

	key, err := cache.Key(ctx, "adoption", "sort=NEWEST")
	require.NoError(t, err)
	var dest page
	require.NoError(t, cache.FetchJSON(ctx, key, &dest, loader))

	mr.Del(key)
	require.NoError(t, cache.FetchJSON(ctx, key, &dest, loader))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, dest.Total)

	_, err = cache.Bump(ctx)
	require.NoError(t, err)
	require.NoError(t, cache.FetchJSON(ctx, key, &dest, loader))
	assert.Equal(t, 2, calls)
}

func TestListenForInvalidationPurgesOtherProcesses(t *testing.T) {
	mr := miniredis.RunT(t)
	newClient := func() *redis.Client {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return client
	}
	reader := New(newClient(), time.Minute)
	writer := New(newClient(), time.Minute)

	key := "list:animals:-:1"
	var dest page
	require.NoError(t, reader.FetchJSON(context.Background(), key, &dest, func(context.Context) (any, error) {
		return page{Total: 1}, nil
	}))
	_, err := writer.Version(context.Background())
	require.NoError(t, err)
	_, ok := reader.local.Get(key)
	require.True(t, ok)

	// Pooled connections are open from here on; only the listener may start
	// new goroutines.
	ignore := goleak.IgnoreCurrent()
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, reader.ListenForInvalidation(ctx))

	_, err = writer.Bump(context.Background())
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, ok := reader.local.Get(key)
		return !ok
	}, time.Second, 10*time.Millisecond)

	cancel()
	goleak.VerifyNone(t, ignore)
}
