package cache

import (
	"time"

	goCache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval is how often expired in-process entries are purged.
const DefaultCleanupInterval = 10 * time.Minute

// NewMemory returns an in-process store used when Redis is not configured.
func NewMemory(defaultTTL time.Duration) *goCache.Cache {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	return goCache.New(defaultTTL, DefaultCleanupInterval)
}
