package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/parallax/internal/core/domain"
	"github.com/custodia-labs/parallax/internal/core/ports/driven"
)

// Ensure RenderCache implements the interface.
var _ driven.RenderCache = (*RenderCache)(nil)

// RenderCache is an in-memory implementation of driven.RenderCache.
type RenderCache struct {
	mu      sync.RWMutex
	entries map[driven.RenderKey]domain.RenderedLocale
}

// NewRenderCache creates an empty render cache.
func NewRenderCache() *RenderCache {
	return &RenderCache{
		entries: make(map[driven.RenderKey]domain.RenderedLocale),
	}
}

// Get returns a copy of the cached render.
func (c *RenderCache) Get(_ context.Context, key driven.RenderKey) (*domain.RenderedLocale, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

// Put stores a render.
func (c *RenderCache) Put(_ context.Context, key driven.RenderKey, rendered *domain.RenderedLocale) error {
	if rendered == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = *rendered
	return nil
}

// Purge removes every entry.
func (c *RenderCache) Purge(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[driven.RenderKey]domain.RenderedLocale)
	return nil
}

// Len returns the number of cached entries.
func (c *RenderCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}
