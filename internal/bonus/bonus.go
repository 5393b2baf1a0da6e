// Package bonus provides rank-based bonus strategies for the sales analyzer.
package bonus

import "github.com/Crombex/sales-bonus/internal/sales"

// ByProfit awards a bonus as a share of accumulated profit based on the
// seller's rank: 15% for the top seller, nothing for the bottom one, 10% for
// second and third place, 5% otherwise. The tiers are checked in that order,
// so a lone seller ranks as top and still earns 15%.
type ByProfit struct{}

// Bonus implements sales.BonusStrategy. index is the zero-based rank in the
// descending-profit ordering and total is the seller count.
func (ByProfit) Bonus(index, total int, s sales.Standing) float64 {
	switch {
	case index == 0:
		return s.Profit * 0.15
	case index == total-1:
		return 0
	case index == 1 || index == 2:
		return s.Profit * 0.10
	default:
		return s.Profit * 0.05
	}
}
