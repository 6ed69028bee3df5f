package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "response_meta_start"
	cacheHitKey      = "cache_hit"
	filterKey        = "filter"
	relationKey      = "relation"
	processingTimeMs = "processing_time_ms"
)

// WithResponseMeta starts an empty meta map for the request and remembers when it began,
// so handlers can report processing time in the envelope they write.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetListingMeta records how a listing was served: from cache or storage, and which
// relation answered the filter.
func SetListingMeta(c *gin.Context, cacheHit bool, filter, relation string) {
	meta := ensureMeta(c)
	meta[cacheHitKey] = cacheHit
	meta[filterKey] = filter
	meta[relationKey] = relation
}

// ExtractMeta returns the metadata map for the response, stamped with the time spent so far.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	meta, ok := c.Get(responseMetaKey)
	if !ok {
		return nil
	}
	typed, ok := meta.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			typed[processingTimeMs] = time.Since(t).Milliseconds()
		}
	}
	return typed
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	meta := make(map[string]interface{})
	c.Set(responseMetaKey, meta)
	return meta
}
