package finboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// RenderCache memoizes rendered chart markup so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// MarkupCache is an in-memory TTL cache for rendered chart markup.
type MarkupCache struct {
	entries *cache.Cache
}

// NewMarkupCache builds a cache with the provided TTL. Expired entries are
// swept at twice the TTL. A zero or negative TTL disables caching.
func NewMarkupCache(ttl time.Duration) *MarkupCache {
	if ttl <= 0 {
		return &MarkupCache{}
	}
	return &MarkupCache{entries: cache.New(ttl, 2*ttl)}
}

// GetOrRender returns a cached entry or renders and stores a new one.
func (c *MarkupCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.entries == nil {
		return render()
	}
	if cached, ok := c.entries.Get(key); ok {
		if html, isString := cached.(string); isString {
			return html, nil
		}
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.entries.SetDefault(key, html)
	return html, nil
}

// markupKey returns a deterministic cache key for one chart view rendered
// under a given kind and theme.
func markupKey(kind, theme string, view ChartView) string {
	payload, err := json.Marshal(view)
	if err != nil {
		return kind + ":" + theme + ":invalid"
	}
	sum := sha1.Sum(payload)
	return kind + ":" + theme + ":" + hex.EncodeToString(sum[:])
}
