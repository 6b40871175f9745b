package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManualCache(now *time.Time) *CacheService {
	cs := NewCacheService()
	cs.now = func() time.Time { return *now }
	return cs
}

func TestCacheService_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cs := newManualCache(&now)

	cs.Set("k", 1, time.Minute)
	v, ok := cs.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)
	_, ok = cs.Get("k")
	assert.False(t, ok)
	// просроченная запись удаляется при чтении
	assert.Zero(t, cs.Len())
}

func TestCacheService_GetOrSet(t *testing.T) {
	now := time.Now()
	cs := newManualCache(&now)
	calls := 0
	fn := func() (interface{}, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := cs.GetOrSet("k", time.Minute, fn)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}
	assert.Equal(t, 1, calls)

	_, err := cs.GetOrSet("bad", time.Minute, func() (interface{}, error) {
		return nil, errors.New("boom")
	})
	assert.Error(t, err)
	_, ok := cs.Get("bad")
	assert.False(t, ok)
}

func TestCacheService_InvalidateByPrefix(t *testing.T) {
	now := time.Now()
	cs := newManualCache(&now)
	cs.Set(GitHubRepoMetaCacheKey("acme", "a"), 1, time.Minute)
	cs.Set(GitHubContentsCacheKey("acme", "a", "", "main"), 2, time.Minute)
	cs.Set(GitHubRepoMetaCacheKey("acme", "b"), 3, time.Minute)

	cs.InvalidateByPrefix("github:acme/a:")

	assert.Equal(t, 1, cs.Len())
	_, ok := cs.Get(GitHubRepoMetaCacheKey("acme", "b"))
	assert.True(t, ok)
}

func TestCacheService_SetEvictsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cs := newManualCache(&now)

	cs.Set("short", 1, time.Second)
	cs.Set("long", 2, time.Hour)
	require.Equal(t, 2, cs.Len())

	now = now.Add(time.Minute)
	cs.Set("fresh", 3, time.Minute)

	assert.Equal(t, 2, cs.Len())
	v, ok := cs.Get("long")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}
