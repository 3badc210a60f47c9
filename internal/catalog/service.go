package catalog

import (
	"context"
	"errors"

	"github.com/kicksline/storefront-api/internal/events"
	"github.com/kicksline/storefront-api/internal/obs"
)

// Service orchestrates catalog lookups, the featured-list cache, and stock
// update notifications.
type Service struct {
	store *Store
	cache *Cache
	bus   *events.Bus
}

// ServiceConfig groups Service dependencies. Cache and Bus are optional.
type ServiceConfig struct {
	Store *Store
	Cache *Cache
	Bus   *events.Bus
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("catalog: store is required")
	}
	return &Service{store: cfg.Store, cache: cfg.Cache, bus: cfg.Bus}, nil
}

// AddProduct appends a product to the catalog and invalidates cached listings.
func (s *Service) AddProduct(ctx context.Context, p Product) (string, error) {
	id, err := s.store.Add(p)
	if err != nil {
		return "", err
	}
	_ = s.cache.Invalidate(ctx, featuredCacheKey)
	return id, nil
}

// Product returns the product with the given id.
func (s *Service) Product(_ context.Context, id string) (Product, bool) {
	p, ok := s.store.Get(id)
	if ok {
		obs.ObserveCatalogLookup("by_id", "hit")
	} else {
		obs.ObserveCatalogLookup("by_id", "miss")
	}
	return p, ok
}

// ByBrand returns all products matching the brand, case-insensitively.
func (s *Service) ByBrand(_ context.Context, brand string) []Product {
	return s.store.ByBrand(brand)
}

// Featured returns featured products in insertion order, read through the
// cache when one is configured.
func (s *Service) Featured(ctx context.Context) []Product {
	if s.cache != nil {
		var cached []Product
		ok, err := s.cache.GetJSON(ctx, featuredCacheKey, &cached)
		if err == nil && ok {
			obs.ObserveCatalogLookup("featured", "cache_hit")
			return cached
		}
	}
	result := s.store.Featured()
	_ = s.cache.SetJSON(ctx, featuredCacheKey, result)
	obs.ObserveCatalogLookup("featured", "store")
	return result
}

// UpdateStock sets stock for a product or one of its variants, invalidates
// cached listings, and emits a stock notification. It reports false when the
// product or variant was not found.
func (s *Service) UpdateStock(ctx context.Context, productID, variantID string, quantity int) bool {
	if !s.store.UpdateStock(productID, variantID, quantity) {
		return false
	}
	_ = s.cache.Invalidate(ctx, featuredCacheKey)
	if s.bus != nil {
		_, _ = s.bus.Emit(ctx, events.TopicStockUpdated, productID, map[string]any{
			"productId": productID,
			"variantId": variantID,
			"stock":     quantity,
		})
	}
	return true
}
