package catalog

import (
	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// SeedProducts returns the demo sneaker catalog loaded at startup when seeding
// is enabled.
func SeedProducts() []Product {
	return []Product{
		{
			ID:           "SNK001",
			Name:         "Nike Air Max 90",
			Brand:        "Nike",
			Price:        money("2999.99"),
			ComparePrice: moneyPtr("3499.99"),
			Category:     "lifestyle",
			Featured:     true,
			Stock:        50,
			Variants: []Variant{
				{ID: "VAR001", Color: "Black", Size: "10", Stock: 25},
				{ID: "VAR002", Color: "Black", Size: "11", Stock: 25},
			},
			Images: []Image{{
				URL:       "https://images.unsplash.com/photo-1592317243138-b5d71ac1d271?ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8Nnx8bmlrZS1haXJtYXgtOTB8ZW58MHx8MHx8fDA%3D&auto=format&fit=crop&q=60&w=500",
				IsPrimary: true,
			}},
			Description: "Classic Nike Air Max 90 with premium materials and iconic design.",
		},
		{
			ID:           "SNK002",
			Name:         "Adidas Ultraboost",
			Brand:        "Adidas",
			Price:        money("1999.99"),
			ComparePrice: moneyPtr("2499.99"),
			Category:     "running",
			Featured:     true,
			Stock:        30,
			Variants: []Variant{
				{ID: "VAR003", Color: "White", Size: "9", Stock: 15},
				{ID: "VAR004", Color: "White", Size: "10", Stock: 15},
			},
			Images: []Image{{
				URL:       "https://images.unsplash.com/photo-1613972798759-e677d3fb640f?ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MTR8fGFkaWRhcyUyMHVsdHJhYm9vc3R8ZW58MHx8MHx8fDA%3D&auto=format&fit=crop&q=60&w=500",
				IsPrimary: true,
			}},
			Description: "Revolutionary running shoes with Boost technology for maximum energy return.",
		},
		{
			ID:           "SNK003",
			Name:         "Air Jordan 1 Retro High",
			Brand:        "Jordan",
			Price:        money("2499.00"),
			ComparePrice: moneyPtr("2999.00"),
			Category:     "lifestyle",
			Featured:     true,
			Stock:        20,
			Variants: []Variant{
				{ID: "VAR005", Color: "Black/Red", Size: "9", Stock: 10},
				{ID: "VAR006", Color: "Black/Red", Size: "10", Stock: 10},
			},
			Images: []Image{{
				URL:       "https://images.unsplash.com/photo-1669205073423-5da5a5280572?ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8M3x8QWlyJTIwSm9yZGFuJTIwMSUyMFJldHJvJTIwSGlnaHxlbnwwfHwwfHx8MA%3D%3D&auto=format&fit=crop&q=60&w=500",
				IsPrimary: true,
			}},
			Description: "Iconic Air Jordan 1 in the classic Bred colorway.",
		},
		{
			ID:       "SNK004",
			Name:     "New Balance 990v5",
			Brand:    "New Balance",
			Price:    money("1799.99"),
			Category: "lifestyle",
			Featured: true,
			Stock:    40,
			Variants: []Variant{
				{ID: "VAR007", Color: "Gray", Size: "8", Stock: 10},
				{ID: "VAR008", Color: "Gray", Size: "9", Stock: 10},
				{ID: "VAR009", Color: "Gray", Size: "10", Stock: 10},
				{ID: "VAR010", Color: "Gray", Size: "11", Stock: 10},
			},
			Images: []Image{{
				URL:       "https://images.unsplash.com/photo-1621315271772-28b1f3a5df87?ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8Mnx8TmV3JTIwQmFsYW5jZXxlbnwwfHwwfHx8MA%3D%3D&auto=format&fit=crop&q=60&w=500",
				IsPrimary: true,
			}},
			Description: "Made in USA premium sneakers with superior comfort and durability.",
		},
		{
			ID:           "SNK005",
			Name:         "Nike Dunk Low",
			Brand:        "Nike",
			Price:        money("3800.00"),
			ComparePrice: moneyPtr("4420.00"),
			Category:     "skateboarding",
			Featured:     true,
			Stock:        35,
			Variants: []Variant{
				{ID: "VAR011", Color: "Black/White", Size: "8", Stock: 10},
				{ID: "VAR012", Color: "Black/White", Size: "9", Stock: 10},
				{ID: "VAR013", Color: "Black/White", Size: "10", Stock: 15},
			},
			Images: []Image{{
				URL:       "https://images.unsplash.com/photo-1615290642924-8e6883b28a5e?ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8M3x8TmlrZSUyMER1bmslMjBMb3d8ZW58MHx8MHx8fDA%3D&auto=format&fit=crop&q=60&w=500",
				IsPrimary: true,
			}},
			Description: "Classic skate shoe with durable construction and timeless style.",
		},
		{
			ID:           "SNK006",
			Name:         "Adidas Stan Smith",
			Brand:        "Adidas",
			Price:        money("3499.00"),
			ComparePrice: moneyPtr("4000.00"),
			Category:     "lifestyle",
			Featured:     true,
			Stock:        60,
			Variants: []Variant{
				{ID: "VAR014", Color: "White/Green", Size: "7", Stock: 15},
				{ID: "VAR015", Color: "White/Green", Size: "8", Stock: 15},
				{ID: "VAR016", Color: "White/Green", Size: "9", Stock: 15},
				{ID: "VAR017", Color: "White/Green", Size: "10", Stock: 15},
			},
			Images:      []Image{{URL: "adidas-stan-smith.jpg", IsPrimary: true}},
			Description: "Timeless tennis-inspired sneakers with clean, minimalist design.",
		},
	}
}

// Seed loads the demo catalog into the store. It stops at the first error,
// which only happens if the store already holds one of the seed ids.
func Seed(store *Store) error {
	for _, p := range SeedProducts() {
		if _, err := store.Add(p); err != nil {
			return err
		}
	}
	return nil
}
