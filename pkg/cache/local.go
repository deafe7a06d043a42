package cache

import (
	"context"
	"sync"
	"time"
)

// localCache implements local in-memory cache with LRU eviction
type localCache struct {
	config LocalConfig
	mu     sync.Mutex
	items  map[string]*cacheItem
	order  []string // access order, oldest first
	done   chan struct{}
}

// cacheItem represents a single cache entry
type cacheItem struct {
	value      interface{}
	expiration time.Time
}

// NewLocalCache creates a new local cache instance
func NewLocalCache(config LocalConfig) Cache {
	lc := &localCache{
		config: config,
		items:  make(map[string]*cacheItem),
		done:   make(chan struct{}),
	}

	// Start cleanup goroutine
	go lc.startCleanup()

	return lc
}

// Get retrieves a value from cache by key
func (lc *localCache) Get(ctx context.Context, key string) (interface{}, bool) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	item, exists := lc.items[key]
	if !exists {
		return nil, false
	}

	if !item.expiration.IsZero() && time.Now().After(item.expiration) {
		lc.remove(key)
		return nil, false
	}

	lc.touch(key)
	return item.value, true
}

// Set stores a value in cache with expiration
func (lc *localCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if expiration <= 0 {
		expiration = lc.config.DefaultExpiration
	}
	var exp time.Time
	if expiration > 0 {
		exp = time.Now().Add(expiration)
	}

	if _, exists := lc.items[key]; !exists {
		// Evict the least recently used entry when full
		if lc.config.MaxSize > 0 && len(lc.items) >= lc.config.MaxSize && len(lc.order) > 0 {
			lc.remove(lc.order[0])
		}
		lc.order = append(lc.order, key)
	} else {
		lc.touch(key)
	}

	lc.items[key] = &cacheItem{value: value, expiration: exp}
	return nil
}

// Delete removes a key from cache
func (lc *localCache) Delete(ctx context.Context, key string) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.remove(key)
	return nil
}

// Exists checks if a key exists in cache
func (lc *localCache) Exists(ctx context.Context, key string) bool {
	_, ok := lc.Get(ctx, key)
	return ok
}

// Clear removes all entries from cache
func (lc *localCache) Clear(ctx context.Context) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.items = make(map[string]*cacheItem)
	lc.order = lc.order[:0]
	return nil
}

// Close stops the cleanup goroutine
func (lc *localCache) Close() error {
	close(lc.done)
	return nil
}

func (lc *localCache) startCleanup() {
	interval := lc.config.CleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-lc.done:
			return
		case <-ticker.C:
			lc.cleanupExpired()
		}
	}
}

func (lc *localCache) cleanupExpired() {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	now := time.Now()
	for key, item := range lc.items {
		if !item.expiration.IsZero() && now.After(item.expiration) {
			lc.remove(key)
		}
	}
}

// remove deletes the entry and its order slot; callers must hold lc.mu
func (lc *localCache) remove(key string) {
	delete(lc.items, key)
	for i, k := range lc.order {
		if k == key {
			lc.order = append(lc.order[:i], lc.order[i+1:]...)
			break
		}
	}
}

// touch moves the key to the most recently used slot; callers must hold lc.mu
func (lc *localCache) touch(key string) {
	for i, k := range lc.order {
		if k == key {
			lc.order = append(append(lc.order[:i], lc.order[i+1:]...), key)
			break
		}
	}
}
