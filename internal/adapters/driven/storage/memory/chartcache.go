package memory

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
)

// Ensure ChartCache implements the interface.
var _ driven.ChartCache = (*ChartCache)(nil)

// ChartCache is a fixed-size LRU cache of computed charts.
type ChartCache struct {
	cache *lru.Cache[string, domain.FourPillars]
}

// NewChartCache creates a cache holding at most size charts.
// size must be positive.
func NewChartCache(size int) (*ChartCache, error) {
	cache, err := lru.New[string, domain.FourPillars](size)
	if err != nil {
		return nil, fmt.Errorf("create chart cache: %w", err)
	}
	return &ChartCache{cache: cache}, nil
}

// Get returns the cached chart for key.
func (c *ChartCache) Get(key string) (domain.FourPillars, bool) {
	return c.cache.Get(key)
}

// Put stores a chart, evicting the least recently used entry when full.
func (c *ChartCache) Put(key string, chart domain.FourPillars) {
	c.cache.Add(key, chart)
}

// Len returns the number of cached charts.
func (c *ChartCache) Len() int {
	return c.cache.Len()
}
