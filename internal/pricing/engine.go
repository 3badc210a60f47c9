package pricing

import "github.com/shopspring/decimal"

// Item describes a line item used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice decimal.Decimal
}

// Rates carries the configured pricing constants. Amounts are decimal values
// so tax and shipping never accumulate float rounding error.
type Rates struct {
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

// Summary aggregates the computed pricing components for a cart.
type Summary struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ZeroSummary returns a summary with every component set to zero. An empty
// cart always prices to this value; it never carries the flat shipping fee.
func ZeroSummary() Summary {
	return Summary{
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		Total:    decimal.Zero,
	}
}

// Compute calculates cart totals for the given line items. All four
// components are derived in one pass so callers can store the result
// atomically.
func Compute(items []Item, rates Rates) Summary {
	subtotal := decimal.Zero
	counted := 0
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		counted += it.Qty
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Qty))))
	}
	if counted == 0 {
		return ZeroSummary()
	}
	tax := subtotal.Mul(rates.TaxRate)
	shipping := rates.FlatShippingFee
	if subtotal.GreaterThan(rates.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping),
	}
}
