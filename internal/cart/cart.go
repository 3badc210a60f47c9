package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kicksline/storefront-api/internal/catalog"
	"github.com/kicksline/storefront-api/internal/events"
	"github.com/kicksline/storefront-api/internal/pricing"
)

// ErrVariantNotFound is returned when an item references a variant the
// product does not carry.
var ErrVariantNotFound = errors.New("cart: variant not found")

// Item is a cart line. Product fields are snapshotted at add time so the line
// keeps rendering even if the catalog entry changes afterwards.
type Item struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	VariantID   string          `json:"variantId,omitempty"`
	ProductName string          `json:"productName"`
	VariantName string          `json:"variantName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Stock       int             `json:"stock"`
}

// LineTotal is the item's price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Summary is the cart's totals plus the summed item quantity.
type Summary struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
}

// Cart holds a single shopper's lines and their derived totals. All methods
// are safe for concurrent use; totals are recomputed under the same lock as
// the mutation so readers never observe a stale summary.
type Cart struct {
	id       string
	userID   string
	currency string
	rates    pricing.Rates
	bus      *events.Bus
	newID    func() string

	mu     sync.Mutex
	items  []*Item
	totals pricing.Summary
}

// Config groups Cart construction options. Bus is optional.
type Config struct {
	ID       string
	UserID   string
	Currency string
	Rates    pricing.Rates
	Bus      *events.Bus
	NewID    func() string
}

// New constructs an empty cart.
func New(cfg Config) *Cart {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	newID := cfg.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Cart{
		id:       id,
		userID:   cfg.UserID,
		currency: cfg.Currency,
		rates:    cfg.Rates,
		bus:      cfg.Bus,
		newID:    newID,
		totals:   pricing.ZeroSummary(),
	}
}

// ID returns the cart identifier.
func (c *Cart) ID() string { return c.id }

// UserID returns the owning user, empty for anonymous carts.
func (c *Cart) UserID() string { return c.userID }

// Currency returns the display currency code.
func (c *Cart) Currency() string { return c.currency }

// AddItem puts a product (optionally a specific variant) into the cart. A line
// already holding the same product and variant has its quantity increased
// instead of a second line being created. Quantities below one are treated
// as one.
func (c *Cart) AddItem(ctx context.Context, product catalog.Product, variantID string, quantity int) (Item, error) {
	if quantity < 1 {
		quantity = 1
	}
	var variant *catalog.Variant
	if variantID != "" {
		v, ok := product.Variant(variantID)
		if !ok {
			return Item{}, fmt.Errorf("%w: %s on product %s", ErrVariantNotFound, variantID, product.ID)
		}
		variant = &v
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing := c.findLine(product.ID, variantID); existing != nil {
		existing.Quantity += quantity
		c.refreshLocked(ctx)
		return *existing, nil
	}

	line := &Item{
		ID:        c.newID(),
		ProductID: product.ID,
		VariantID: variantID,
		UnitPrice: product.UnitPrice(variant),
		Quantity:  quantity,

		ProductName: product.Name,
		ImageURL:    product.PrimaryImageURL(),
		Stock:       product.Stock,
	}
	if variant != nil {
		line.VariantName = variant.Label()
		line.Stock = variant.Stock
	}
	c.items = append(c.items, line)
	c.refreshLocked(ctx)
	return *line, nil
}

// RemoveItem drops the line with the given id. It reports whether a line was
// removed.
func (c *Cart) RemoveItem(ctx context.Context, itemID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, line := range c.items {
		if line.ID == itemID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.refreshLocked(ctx)
			return true
		}
	}
	return false
}

// UpdateQuantity replaces a line's quantity. Quantities below one leave the
// cart untouched and report false, as does an unknown item id.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID string, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range c.items {
		if line.ID == itemID {
			line.Quantity = quantity
			c.refreshLocked(ctx)
			return true
		}
	}
	return false
}

// Clear removes every line and resets totals to zero.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.totals = pricing.ZeroSummary()
	c.emitLocked(ctx, events.TopicCartCleared)
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	for i, line := range c.items {
		out[i] = *line
	}
	return out
}

// Summary returns the current totals and total item quantity.
func (c *Cart) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

func (c *Cart) summaryLocked() Summary {
	count := 0
	for _, line := range c.items {
		count += line.Quantity
	}
	return Summary{
		ItemCount: count,
		Subtotal:  c.totals.Subtotal,
		Tax:       c.totals.Tax,
		Shipping:  c.totals.Shipping,
		Total:     c.totals.Total,
	}
}

func (c *Cart) findLine(productID, variantID string) *Item {
	for _, line := range c.items {
		if line.ProductID == productID && line.VariantID == variantID {
			return line
		}
	}
	return nil
}

// refreshLocked recomputes totals and notifies observers. Callers must hold
// the mutex.
func (c *Cart) refreshLocked(ctx context.Context) {
	lines := make([]pricing.Item, len(c.items))
	for i, line := range c.items {
		lines[i] = pricing.Item{Qty: line.Quantity, UnitPrice: line.UnitPrice}
	}
	c.totals = pricing.Compute(lines, c.rates)
	c.emitLocked(ctx, events.TopicCartUpdated)
}

func (c *Cart) emitLocked(ctx context.Context, topic string) {
	if c.bus == nil {
		return
	}
	_, _ = c.bus.Emit(ctx, topic, c.id, c.summaryLocked())
}
