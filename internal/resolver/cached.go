package resolver

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/toyz/importgen/internal/models"
)

// DefaultCacheSize is the number of resolved coordinates remembered per run
const DefaultCacheSize = 1024

// Cached memoizes successful resolutions for the lifetime of a run. Nothing
// is persisted between runs.
type Cached struct {
	next  Resolver
	cache *lru.Cache[string, string]
}

// NewCached wraps next with an LRU of the given size
func NewCached(next Resolver, size int) (*Cached, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

// Resolve returns a remembered path or delegates to the wrapped resolver
func (c *Cached) Resolve(ctx context.Context, coord models.Coordinate) (string, error) {
	key := coord.String()
	if path, ok := c.cache.Get(key); ok {
		return path, nil
	}

	path, err := c.next.Resolve(ctx, coord)
	if err != nil {
		return "", err
	}

	c.cache.Add(key, path)
	return path, nil
}
