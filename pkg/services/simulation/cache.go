package simulation

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/de-tools/decision-simulator/pkg/models/domain"
)

// CachedProjector memoizes projections by input vector.
// Projections are deterministic, so a hit is indistinguishable from a recomputation.
type CachedProjector struct {
	next     Projector
	cache    *lru.Cache[domain.SimulationInput, domain.SimulationResult]
	observer Observer
}

// NewCachedProjector wraps next with an LRU of the given size. A size <= 0 disables caching.
func NewCachedProjector(next Projector, size int, observer Observer) (Projector, error) {
	if next == nil {
		return nil, fmt.Errorf("projector is nil")
	}
	if size <= 0 {
		return next, nil
	}
	cache, err := lru.New[domain.SimulationInput, domain.SimulationResult](size)
	if err != nil {
		return nil, fmt.Errorf("create projection cache: %w", err)
	}
	return &CachedProjector{next: next, cache: cache, observer: observer}, nil
}

func (c *CachedProjector) Project(input domain.SimulationInput) domain.SimulationResult {
	if cached, ok := c.cache.Get(input); ok {
		if c.observer != nil {
			c.observer.CacheHit()
		}
		return cached.Clone()
	}

	result := c.next.Project(input)
	c.cache.Add(input, result.Clone())
	return result
}

func (c *CachedProjector) Len() int {
	return c.cache.Len()
}
