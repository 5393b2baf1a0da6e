// Package revenue provides line-item revenue strategies for the sales
// analyzer.
package revenue

import "github.com/Crombex/sales-bonus/internal/sales"

// Simple computes revenue as sale price times quantity with the percentage
// discount applied. The product is accepted for strategy compatibility but
// does not participate in the formula. Discounts outside [0, 100] are not
// validated and flow straight through the arithmetic.
type Simple struct{}

// Revenue implements sales.RevenueStrategy.
func (Simple) Revenue(item sales.LineItem, _ sales.Product) float64 {
	return item.SalePrice * float64(item.Quantity) * (1 - item.Discount/100)
}
