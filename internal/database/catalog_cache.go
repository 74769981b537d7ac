package database

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/KihadiMalick/Afri-Cal-sub000/internal/nutrition"
)

const (
	cacheKeyIngredients  = "ingredients"
	cacheKeyPreparations = "preparations"
)

// CachedCatalog memoizes catalog reads for the TTL. The catalog changes only
// on seeding, so a short TTL keeps every pipeline run at two map lookups
// instead of two table scans.
type CachedCatalog struct {
	inner *CatalogRepo
	cache *gocache.Cache
}

func NewCachedCatalog(inner *CatalogRepo, ttl time.Duration) *CachedCatalog {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	return &CachedCatalog{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *CachedCatalog) FetchIngredientFacts(ctx context.Context) ([]nutrition.FactRow, error) {
	return c.fetch(ctx, cacheKeyIngredients, c.inner.FetchIngredientFacts)
}

func (c *CachedCatalog) FetchPreparationFacts(ctx context.Context) ([]nutrition.FactRow, error) {
	return c.fetch(ctx, cacheKeyPreparations, c.inner.FetchPreparationFacts)
}

func (c *CachedCatalog) fetch(ctx context.Context, key string, load func(context.Context) ([]nutrition.FactRow, error)) ([]nutrition.FactRow, error) {
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]nutrition.FactRow), nil
	}

	facts, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(key, facts)
	return facts, nil
}

// Invalidate drops both cached tables, for use after seeding.
func (c *CachedCatalog) Invalidate() {
	c.cache.Delete(cacheKeyIngredients)
	c.cache.Delete(cacheKeyPreparations)
}
