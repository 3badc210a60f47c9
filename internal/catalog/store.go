package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrDuplicateID is returned when a product with the same identifier already
// exists. Rejecting duplicates keeps Get deterministic.
var ErrDuplicateID = errors.New("catalog: duplicate product id")

// ErrInvalidProduct is returned when a product fails basic validation.
var ErrInvalidProduct = errors.New("catalog: invalid product")

// Store is the in-memory product table. It preserves insertion order for
// listings and guards all access with a single mutex; catalog state lives
// only for the lifetime of the process.
type Store struct {
	mu       sync.RWMutex
	products []Product
	index    map[string]int
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add appends a product and makes it visible to all lookups. Identifiers must
// be unique within the catalog and within each product's variant list, and
// prices must not be negative.
func (s *Store) Add(p Product) (string, error) {
	if err := validateProduct(p); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.index[p.ID]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	s.index[p.ID] = len(s.products)
	s.products = append(s.products, p.clone())
	return p.ID, nil
}

// Get returns the product with the given id.
func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i].clone(), true
}

// ByBrand returns all products whose brand matches case-insensitively, in
// insertion order.
func (s *Store) ByBrand(brand string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Product, 0)
	for _, p := range s.products {
		if strings.EqualFold(p.Brand, brand) {
			result = append(result, p.clone())
		}
	}
	return result
}

// Featured returns all featured products in insertion order.
func (s *Store) Featured() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]Product, 0)
	for _, p := range s.products {
		if p.Featured {
			result = append(result, p.clone())
		}
	}
	return result
}

// UpdateStock sets the variant's stock when variantID is given, otherwise the
// product's base stock. It reports false when the product or variant does not
// exist; callers decide whether that is worth surfacing.
func (s *Store) UpdateStock(productID, variantID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[productID]
	if !ok {
		return false
	}
	if variantID == "" {
		s.products[i].Stock = quantity
		return true
	}
	for vi := range s.products[i].Variants {
		if s.products[i].Variants[vi].ID == variantID {
			s.products[i].Variants[vi].Stock = quantity
			return true
		}
	}
	return false
}

// Len reports the number of products in the catalog.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func validateProduct(p Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	seen := make(map[string]struct{}, len(p.Variants))
	for _, v := range p.Variants {
		if strings.TrimSpace(v.ID) == "" {
			return fmt.Errorf("%w: variant id is required", ErrInvalidProduct)
		}
		if _, dup := seen[v.ID]; dup {
			return fmt.Errorf("%w: duplicate variant id %s", ErrInvalidProduct, v.ID)
		}
		seen[v.ID] = struct{}{}
		if v.Price != nil && v.Price.IsNegative() {
			return fmt.Errorf("%w: variant price must not be negative", ErrInvalidProduct)
		}
	}
	return nil
}
