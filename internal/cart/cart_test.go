package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/kicksline/storefront-api/internal/catalog"
	"github.com/kicksline/storefront-api/internal/events"
	"github.com/kicksline/storefront-api/internal/pricing"
)

func defaultRates() pricing.Rates {
	return pricing.Rates{
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.RequireFromString("50"),
		FlatShippingFee:       decimal.RequireFromString("9.99"),
	}
}

func newTestCart() *Cart {
	return New(Config{Currency: "USD", Rates: defaultRates()})
}

func product(id, price string) catalog.Product {
	return catalog.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: decimal.RequireFromString(price),
		Stock: 10,
	}
}

func requireMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

type captureNotifier struct {
	events []events.Event
}

func (c *captureNotifier) Notify(_ context.Context, e events.Event) error {
	c.events = append(c.events, e)
	return nil
}

func TestEmptyCartSummaryIsZero(t *testing.T) {
	c := newTestCart()
	s := c.Summary()
	require.Equal(t, 0, s.ItemCount)
	requireMoney(t, "0", s.Subtotal)
	requireMoney(t, "0", s.Tax)
	requireMoney(t, "0", s.Shipping)
	requireMoney(t, "0", s.Total)
	require.Empty(t, c.Items())
}

func TestTotalsAboveFreeShippingThreshold(t *testing.T) {
	c := newTestCart()
	_, err := c.AddItem(context.Background(), product("P1", "100.00"), "", 3)
	require.NoError(t, err)

	s := c.Summary()
	require.Equal(t, 3, s.ItemCount)
	requireMoney(t, "300.00", s.Subtotal)
	requireMoney(t, "24.00", s.Tax)
	requireMoney(t, "0", s.Shipping)
	requireMoney(t, "324.00", s.Total)
}

func TestTotalsBelowFreeShippingThreshold(t *testing.T) {
	c := newTestCart()
	_, err := c.AddItem(context.Background(), product("P1", "10.00"), "", 1)
	require.NoError(t, err)

	s := c.Summary()
	requireMoney(t, "10.00", s.Subtotal)
	requireMoney(t, "0.80", s.Tax)
	requireMoney(t, "9.99", s.Shipping)
	requireMoney(t, "20.79", s.Total)
}

func TestAddItemMergesSameProductAndVariant(t *testing.T) {
	ctx := context.Background()
	c := newTestCart()
	p := product("P1", "100.00")
	p.Variants = []catalog.Variant{
		{ID: "V1", Color: "Black", Size: "10", Stock: 5},
		{ID: "V2", Color: "Black", Size: "11", Stock: 5},
	}

	first, err := c.AddItem(ctx, p, "V1", 1)
	require.NoError(t, err)
	merged, err := c.AddItem(ctx, p, "V1", 2)
	require.NoError(t, err)
	require.Equal(t, first.ID, merged.ID)
	require.Equal(t, 3, merged.Quantity)

	// a different variant gets its own line
	_, err = c.AddItem(ctx, p, "V2", 1)
	require.NoError(t, err)
	require.Len(t, c.Items(), 2)
	require.Equal(t, 4, c.Summary().ItemCount)

	// so does the base product with no variant
	_, err = c.AddItem(ctx, p, "", 1)
	require.NoError(t, err)
	require.Len(t, c.Items(), 3)
}

func TestAddItemSnapshot(t *testing.T) {
	override := decimal.RequireFromString("120.00")
	p := catalog.Product{
		ID:    "P1",
		Name:  "Air Max",
		Price: decimal.RequireFromString("100.00"),
		Stock: 50,
		Variants: []catalog.Variant{
			{ID: "V1", Color: "Black", Size: "10", Stock: 5, Price: &override},
		},
		Images: []catalog.Image{
			{URL: "side.jpg"},
			{URL: "front.jpg", IsPrimary: true},
		},
	}

	c := newTestCart()
	item, err := c.AddItem(context.Background(), p, "V1", 1)
	require.NoError(t, err)
	require.Equal(t, "Air Max", item.ProductName)
	require.Equal(t, "Black - Size 10", item.VariantName)
	requireMoney(t, "120.00", item.UnitPrice)
	require.Equal(t, "front.jpg", item.ImageURL)
	require.Equal(t, 5, item.Stock)

	// no variant: base price, base stock, first image when none is primary
	p.Images = []catalog.Image{{URL: "side.jpg"}, {URL: "front.jpg"}}
	base, err := c.AddItem(context.Background(), p, "", 1)
	require.NoError(t, err)
	requireMoney(t, "100.00", base.UnitPrice)
	require.Equal(t, "side.jpg", base.ImageURL)
	require.Equal(t, 50, base.Stock)
	require.Empty(t, base.VariantName)
}

func TestAddItemUnknownVariant(t *testing.T) {
	c := newTestCart()
	_, err := c.AddItem(context.Background(), product("P1", "10.00"), "V404", 1)
	require.ErrorIs(t, err, ErrVariantNotFound)
	require.Empty(t, c.Items())
}

func TestAddItemCoercesQuantityToOne(t *testing.T) {
	c := newTestCart()
	item, err := c.AddItem(context.Background(), product("P1", "10.00"), "", 0)
	require.NoError(t, err)
	require.Equal(t, 1, item.Quantity)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	c := newTestCart()
	item, err := c.AddItem(ctx, product("P1", "100.00"), "", 1)
	require.NoError(t, err)
	_, err = c.AddItem(ctx, product("P2", "30.00"), "", 1)
	require.NoError(t, err)

	require.False(t, c.RemoveItem(ctx, "missing"))
	require.True(t, c.RemoveItem(ctx, item.ID))
	require.Len(t, c.Items(), 1)

	s := c.Summary()
	requireMoney(t, "30.00", s.Subtotal)
	requireMoney(t, "9.99", s.Shipping)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c := newTestCart()
	item, err := c.AddItem(ctx, product("P1", "10.00"), "", 2)
	require.NoError(t, err)

	require.True(t, c.UpdateQuantity(ctx, item.ID, 6))
	s := c.Summary()
	require.Equal(t, 6, s.ItemCount)
	requireMoney(t, "60.00", s.Subtotal)
	requireMoney(t, "0", s.Shipping)

	// zero and negative quantities leave the cart untouched
	require.False(t, c.UpdateQuantity(ctx, item.ID, 0))
	require.False(t, c.UpdateQuantity(ctx, item.ID, -1))
	require.Equal(t, 6, c.Summary().ItemCount)

	require.False(t, c.UpdateQuantity(ctx, "missing", 2))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c := newTestCart()
	_, err := c.AddItem(ctx, product("P1", "100.00"), "", 2)
	require.NoError(t, err)

	c.Clear(ctx)
	require.Empty(t, c.Items())
	s := c.Summary()
	require.Equal(t, 0, s.ItemCount)
	requireMoney(t, "0", s.Total)
}

func TestMutationsNotifyObservers(t *testing.T) {
	ctx := context.Background()
	spy := &captureNotifier{}
	c := New(Config{
		Currency: "USD",
		Rates:    defaultRates(),
		Bus:      &events.Bus{Notifiers: []events.Notifier{spy}},
	})

	item, err := c.AddItem(ctx, product("P1", "100.00"), "", 1)
	require.NoError(t, err)
	require.True(t, c.UpdateQuantity(ctx, item.ID, 3))
	require.True(t, c.RemoveItem(ctx, item.ID))
	c.Clear(ctx)

	require.Len(t, spy.events, 4)
	for _, e := range spy.events[:3] {
		require.Equal(t, events.TopicCartUpdated, e.Topic)
		require.Equal(t, c.ID(), e.AggregateID)
	}
	require.Equal(t, events.TopicCartCleared, spy.events[3].Topic)
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(RegistryConfig{Currency: "USD", Rates: defaultRates()})
	c := reg.Create("user-1")
	require.Equal(t, "user-1", c.UserID())
	require.Equal(t, "USD", c.Currency())
	require.Equal(t, 1, reg.Len())

	got, ok := reg.Get(c.ID())
	require.True(t, ok)
	require.Same(t, c, got)

	_, ok = reg.Get("missing")
	require.False(t, ok)
}
