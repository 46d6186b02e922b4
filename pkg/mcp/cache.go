package mcp

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/themesmith/themesmith/pkg/guidance"
)

// guidanceCache memoizes rendered guidance documents. Catalogs are immutable
// for the server's lifetime, so entries only expire to bound memory.
type guidanceCache struct {
	builder *guidance.Builder
	store   *gocache.Cache
	ttl     time.Duration
}

func newGuidanceCache(builder *guidance.Builder, ttl time.Duration) *guidanceCache {
	c := &guidanceCache{builder: builder, ttl: ttl}
	if ttl > 0 {
		c.store = gocache.New(ttl, 2*ttl)
	}
	return c
}

// Markdown returns the markdown guidance for a component.
func (c *guidanceCache) Markdown(name string) string {
	key := "md:" + guidance.Normalize(name)
	if v, ok := c.get(key); ok {
		return v
	}
	md := c.builder.Build(name).Markdown()
	c.set(key, md)
	return md
}

// HTML returns the guidance for a component rendered to HTML.
func (c *guidanceCache) HTML(name string) (string, error) {
	key := "html:" + guidance.Normalize(name)
	if v, ok := c.get(key); ok {
		return v, nil
	}
	html, err := c.builder.Build(name).HTML()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

// Len reports how many rendered documents are held.
func (c *guidanceCache) Len() int {
	if c.store == nil {
		return 0
	}
	return c.store.ItemCount()
}

func (c *guidanceCache) get(key string) (string, bool) {
	if c.store == nil {
		return "", false
	}
	v, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c *guidanceCache) set(key, value string) {
	if c.store == nil {
		return
	}
	c.store.Set(key, value, c.ttl)
}
