package catalog

import (
	"github.com/shopspring/decimal"
)

// Image is a product photo; at most one per product is flagged primary.
type Image struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary,omitempty"`
}

// Variant is a purchasable configuration of a product with its own stock and
// an optional price override.
type Variant struct {
	ID    string           `json:"id"`
	Color string           `json:"color"`
	Size  string           `json:"size"`
	Stock int              `json:"stock"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// Label renders the display name the cart snapshots for a variant line.
func (v Variant) Label() string {
	return v.Color + " - Size " + v.Size
}

// Product is a catalog entry. Products are immutable after creation except
// for stock counts.
type Product struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Brand        string           `json:"brand"`
	Price        decimal.Decimal  `json:"price"`
	ComparePrice *decimal.Decimal `json:"comparePrice,omitempty"`
	Category     string           `json:"category"`
	Featured     bool             `json:"featured"`
	Stock        int              `json:"stock"`
	Variants     []Variant        `json:"variants"`
	Images       []Image          `json:"images"`
	Description  string           `json:"description,omitempty"`
}

// Variant returns the variant with the given id.
func (p Product) Variant(id string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// UnitPrice resolves the effective price for the product, honouring the
// variant override when one is set.
func (p Product) UnitPrice(variant *Variant) decimal.Decimal {
	if variant != nil && variant.Price != nil {
		return *variant.Price
	}
	return p.Price
}

// PrimaryImageURL returns the primary-flagged image URL, falling back to the
// first image, or empty when the product has none.
func (p Product) PrimaryImageURL() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

func (p Product) clone() Product {
	out := p
	if p.ComparePrice != nil {
		cp := *p.ComparePrice
		out.ComparePrice = &cp
	}
	if p.Variants != nil {
		out.Variants = make([]Variant, len(p.Variants))
		for i, v := range p.Variants {
			out.Variants[i] = v
			if v.Price != nil {
				vp := *v.Price
				out.Variants[i].Price = &vp
			}
		}
	}
	if p.Images != nil {
		out.Images = append([]Image(nil), p.Images...)
	}
	return out
}
