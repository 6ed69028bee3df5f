package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	goCache "github.com/patrickmn/go-cache"

	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

// MemoryCacheRepository keeps cached payloads in process. Values are stored as JSON so
// callers observe the same decoding behaviour as with Redis.
type MemoryCacheRepository struct {
	store *goCache.Cache
}

// NewMemoryCacheRepository wraps an in-process cache.
func NewMemoryCacheRepository(store *goCache.Cache) *MemoryCacheRepository {
	return &MemoryCacheRepository{store: store}
}

// Get decodes the cached value for key into dest.
func (r *MemoryCacheRepository) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := r.store.Get(key)
	if !ok {
		return appErrors.ErrCacheMiss
	}
	payload, ok := raw.([]byte)
	if !ok {
		return fmt.Errorf("cache value for %s has type %T", key, raw)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set stores value under key for ttl.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	r.store.Set(key, payload, ttl)
	return nil
}

// DeleteByPattern removes keys matching a glob pattern, using the same syntax as Redis SCAN MATCH
// for the subset of patterns produced by the cache service.
func (r *MemoryCacheRepository) DeleteByPattern(_ context.Context, pattern string) error {
	for key := range r.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return fmt.Errorf("match pattern %s: %w", pattern, err)
		}
		if matched {
			r.store.Delete(key)
		}
	}
	return nil
}
