package cart

import (
	"sync"

	"github.com/kicksline/storefront-api/internal/events"
	"github.com/kicksline/storefront-api/internal/obs"
	"github.com/kicksline/storefront-api/internal/pricing"
)

// Registry tracks live carts by id. Carts exist only in memory; a restart
// empties the registry.
type Registry struct {
	currency string
	rates    pricing.Rates
	bus      *events.Bus

	mu    sync.RWMutex
	carts map[string]*Cart
}

// RegistryConfig groups Registry dependencies. Bus is optional.
type RegistryConfig struct {
	Currency string
	Rates    pricing.Rates
	Bus      *events.Bus
}

// NewRegistry constructs an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	return &Registry{
		currency: cfg.Currency,
		rates:    cfg.Rates,
		bus:      cfg.Bus,
		carts:    make(map[string]*Cart),
	}
}

// Create makes a new cart, optionally bound to a user, and registers it.
func (r *Registry) Create(userID string) *Cart {
	c := New(Config{
		UserID:   userID,
		Currency: r.currency,
		Rates:    r.rates,
		Bus:      r.bus,
	})
	r.mu.Lock()
	r.carts[c.ID()] = c
	live := len(r.carts)
	r.mu.Unlock()
	obs.SetLiveCarts(live)
	return c
}

// Get returns the cart with the given id.
func (r *Registry) Get(id string) (*Cart, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.carts[id]
	return c, ok
}

// Len reports the number of live carts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carts)
}
