package service

import (
	"strings"
	"sync"
	"time"
)

// CacheService provides in-memory caching with TTL and invalidation support.
type CacheService struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	now   func() time.Time
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService creates a new cache service.
// Expired entries are evicted on access, without a background sweeper.
func NewCacheService() *CacheService {
	return &CacheService{
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
	}
}

// Get retrieves a value from cache. An expired entry is removed.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	entry, exists := cs.cache[key]
	cs.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if cs.now().After(entry.expiresAt) {
		cs.mu.Lock()
		// запись могла быть перезаписана между блокировками
		if current, ok := cs.cache[key]; ok && current == entry {
			delete(cs.cache, key)
		}
		cs.mu.Unlock()
		return nil, false
	}

	return entry.data, true
}

// Set stores a value in cache with TTL and drops expired entries.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.evictExpiredLocked()
	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: cs.now().Add(ttl),
	}
}

// Delete removes a key from cache.
func (cs *CacheService) Delete(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
}

// InvalidateByPrefix removes all keys with the given prefix.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if strings.HasPrefix(key, prefix) {
			delete(cs.cache, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (cs *CacheService) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.cache)
}

// GetOrSet retrieves a value from cache or computes it if not found.
// Errors are not cached.
func (cs *CacheService) GetOrSet(key string, ttl time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	if value, found := cs.Get(key); found {
		return value, nil
	}

	value, err := fn()
	if err != nil {
		return nil, err
	}

	cs.Set(key, value, ttl)
	return value, nil
}

func (cs *CacheService) evictExpiredLocked() {
	now := cs.now()
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}

// Cache key generators
func GitHubContentsCacheKey(owner, repo, path, branch string) string {
	return "github:" + owner + "/" + repo + ":contents:" + branch + ":" + path
}

func GitHubFileCacheKey(owner, repo, path, branch string) string {
	return "github:" + owner + "/" + repo + ":file:" + branch + ":" + path
}

func GitHubRepoMetaCacheKey(owner, repo string) string {
	return "github:" + owner + "/" + repo + ":meta"
}
