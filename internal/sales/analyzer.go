// Package sales computes per-seller performance metrics from an in-memory
// dataset of sellers, products, and purchase records. Revenue and bonus
// policies are injected so callers can swap formulas without touching the
// aggregation pass.
package sales

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrInvalidInput is returned when the dataset or the strategy options
	// are missing. Non-retryable; the caller's invocation is wrong.
	ErrInvalidInput = errors.New("sales: invalid input")
	// ErrUnknownSeller is returned when a purchase record references a
	// seller id absent from the dataset.
	ErrUnknownSeller = errors.New("sales: unknown seller")
	// ErrUnknownProduct is returned when a line item references a SKU absent
	// from the dataset.
	ErrUnknownProduct = errors.New("sales: unknown product")
)

// topProductLimit caps the per-seller top-products mapping.
const topProductLimit = 9

// accumulator carries a seller's running totals during the aggregation pass.
// It is mutated only before ranking and read-only afterwards.
type accumulator struct {
	sellerID   int64
	name       string
	revenue    float64
	profit     float64
	salesCount int
	soldQty    map[string]int
	skuOrder   []string
}

// Analyze aggregates every purchase record into per-seller totals, ranks
// sellers by descending profit, and emits one result per seller in ranked
// order. Unknown seller ids or SKUs abort the whole call; no partial result
// is returned. Inputs are never mutated and the pass runs with full float64
// precision, rounding to two decimals only on output.
func Analyze(data *Data, opts *Options) ([]SellerResult, error) {
	if data == nil || opts == nil || opts.Revenue == nil || opts.Bonus == nil {
		return nil, ErrInvalidInput
	}

	accs := make([]*accumulator, 0, len(data.Sellers))
	bySeller := make(map[int64]*accumulator, len(data.Sellers))
	for _, s := range data.Sellers {
		acc := &accumulator{
			sellerID: s.ID,
			name:     s.FirstName + " " + s.LastName,
			soldQty:  make(map[string]int),
		}
		accs = append(accs, acc)
		bySeller[s.ID] = acc
	}
	bySKU := make(map[string]Product, len(data.Products))
	for _, p := range data.Products {
		bySKU[p.SKU] = p
	}

	for _, rec := range data.PurchaseRecords {
		acc, ok := bySeller[rec.SellerID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrUnknownSeller, rec.SellerID)
		}
		acc.salesCount++
		acc.revenue += rec.TotalAmount
		for _, item := range rec.Items {
			product, ok := bySKU[item.SKU]
			if !ok {
				return nil, fmt.Errorf("%w: sku %q", ErrUnknownProduct, item.SKU)
			}
			cost := product.PurchasePrice * float64(item.Quantity)
			acc.profit += opts.Revenue.Revenue(item, product) - cost
			if _, seen := acc.soldQty[item.SKU]; !seen {
				acc.skuOrder = append(acc.skuOrder, item.SKU)
			}
			acc.soldQty[item.SKU] += item.Quantity
		}
	}

	// Stable sort keeps equal-profit sellers in input order, making ties
	// deterministic.
	sort.SliceStable(accs, func(i, j int) bool { return accs[i].profit > accs[j].profit })

	total := len(accs)
	results := make([]SellerResult, 0, total)
	for i, acc := range accs {
		bonus := opts.Bonus.Bonus(i, total, Standing{
			SellerID:   acc.sellerID,
			Name:       acc.name,
			Revenue:    acc.revenue,
			Profit:     acc.profit,
			SalesCount: acc.salesCount,
		})
		results = append(results, SellerResult{
			SellerID:    acc.sellerID,
			Name:        acc.name,
			Revenue:     round2(acc.revenue),
			Profit:      round2(acc.profit),
			SalesCount:  acc.salesCount,
			TopProducts: acc.topProducts(topProductLimit),
			Bonus:       round2(bonus),
		})
	}
	return results, nil
}

// topProducts returns the per-SKU sold quantities sorted by descending
// quantity, ties keeping first-seen SKU order, truncated to limit entries.
func (a *accumulator) topProducts(limit int) TopProducts {
	out := make(TopProducts, 0, len(a.skuOrder))
	for _, sku := range a.skuOrder {
		out = append(out, ProductQuantity{SKU: sku, Quantity: a.soldQty[sku]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
