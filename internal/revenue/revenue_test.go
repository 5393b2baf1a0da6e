package revenue

import (
	"math"
	"testing"

	"github.com/Crombex/sales-bonus/internal/sales"
)

func TestSimpleRevenue(t *testing.T) {
	cases := []struct {
		name string
		item sales.LineItem
		want float64
	}{
		{"no discount", sales.LineItem{SalePrice: 25, Quantity: 2}, 50},
		{"half off", sales.LineItem{Discount: 50, SalePrice: 100, Quantity: 1}, 50},
		{"full discount", sales.LineItem{Discount: 100, SalePrice: 100, Quantity: 3}, 0},
		{"fractional price", sales.LineItem{Discount: 10, SalePrice: 19.99, Quantity: 3}, 19.99 * 3 * 0.9},
		{"zero quantity", sales.LineItem{Discount: 5, SalePrice: 10, Quantity: 0}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Simple{}.Revenue(tc.item, sales.Product{SKU: "A1", PurchasePrice: 10})
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSimpleRevenueIgnoresProduct(t *testing.T) {
	item := sales.LineItem{Discount: 20, SalePrice: 10, Quantity: 5}
	a := Simple{}.Revenue(item, sales.Product{SKU: "A1", PurchasePrice: 1})
	b := Simple{}.Revenue(item, sales.Product{SKU: "B2", PurchasePrice: 999})
	if a != b {
		t.Fatalf("revenue should not depend on the product, got %v and %v", a, b)
	}
}
