package sales_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Crombex/sales-bonus/internal/bonus"
	"github.com/Crombex/sales-bonus/internal/revenue"
	"github.com/Crombex/sales-bonus/internal/sales"
)

func defaultOptions() *sales.Options {
	return &sales.Options{Revenue: revenue.Simple{}, Bonus: bonus.ByProfit{}}
}

func TestAnalyzeSingleSeller(t *testing.T) {
	data := &sales.Data{
		Sellers:  []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 10}},
		PurchaseRecords: []sales.PurchaseRecord{{
			SellerID:    1,
			TotalAmount: 50,
			Items:       []sales.LineItem{{SKU: "A1", Discount: 0, SalePrice: 25, Quantity: 2}},
		}},
	}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)

	want := []sales.SellerResult{{
		SellerID:    1,
		Name:        "Jane Doe",
		Revenue:     50,
		Profit:      30,
		SalesCount:  1,
		TopProducts: sales.TopProducts{{SKU: "A1", Quantity: 2}},
		Bonus:       4.5,
	}}
	require.Equal(t, want, got)
}

func TestAnalyzeInvalidInput(t *testing.T) {
	data := &sales.Data{Sellers: []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}}}

	cases := []struct {
		name string
		data *sales.Data
		opts *sales.Options
	}{
		{"nil data", nil, defaultOptions()},
		{"nil options", data, nil},
		{"nil revenue strategy", data, &sales.Options{Bonus: bonus.ByProfit{}}},
		{"nil bonus strategy", data, &sales.Options{Revenue: revenue.Simple{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := sales.Analyze(tc.data, tc.opts)
			require.ErrorIs(t, err, sales.ErrInvalidInput)
			require.Nil(t, results)
		})
	}
}

func TestAnalyzeUnknownSeller(t *testing.T) {
	data := &sales.Data{
		Sellers:         []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		Products:        []sales.Product{{SKU: "A1", PurchasePrice: 10}},
		PurchaseRecords: []sales.PurchaseRecord{{SellerID: 99, TotalAmount: 10}},
	}
	_, err := sales.Analyze(data, defaultOptions())
	require.ErrorIs(t, err, sales.ErrUnknownSeller)
}

func TestAnalyzeUnknownProduct(t *testing.T) {
	data := &sales.Data{
		Sellers:  []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 10}},
		PurchaseRecords: []sales.PurchaseRecord{{
			SellerID:    1,
			TotalAmount: 10,
			Items:       []sales.LineItem{{SKU: "ZZ", SalePrice: 10, Quantity: 1}},
		}},
	}
	_, err := sales.Analyze(data, defaultOptions())
	require.ErrorIs(t, err, sales.ErrUnknownProduct)
}

func TestAnalyzeRankingAndBonusTiers(t *testing.T) {
	// Five sellers, zero-cost product, so profit equals sale price.
	salePrices := map[int64]float64{1: 10, 2: 50, 3: 30, 4: 20, 5: 40}
	data := &sales.Data{
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 0}},
	}
	for id := int64(1); id <= 5; id++ {
		data.Sellers = append(data.Sellers, sales.Seller{ID: id, FirstName: "Seller", LastName: fmt.Sprint(id)})
		data.PurchaseRecords = append(data.PurchaseRecords, sales.PurchaseRecord{
			SellerID:    id,
			TotalAmount: salePrices[id],
			Items:       []sales.LineItem{{SKU: "A1", SalePrice: salePrices[id], Quantity: 1}},
		})
	}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 5)

	wantOrder := []int64{2, 5, 3, 4, 1}
	wantBonus := []float64{7.5, 4, 3, 1, 0}
	for i, result := range got {
		require.Equal(t, wantOrder[i], result.SellerID, "rank %d", i)
		require.InDelta(t, wantBonus[i], result.Bonus, 1e-9, "bonus at rank %d", i)
	}
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i-1].Profit, got[i].Profit)
	}
}

func TestAnalyzeEqualProfitKeepsInputOrder(t *testing.T) {
	data := &sales.Data{
		Sellers: []sales.Seller{
			{ID: 7, FirstName: "First", LastName: "Seller"},
			{ID: 8, FirstName: "Second", LastName: "Seller"},
		},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 0}},
	}
	for _, id := range []int64{7, 8} {
		data.PurchaseRecords = append(data.PurchaseRecords, sales.PurchaseRecord{
			SellerID:    id,
			TotalAmount: 25,
			Items:       []sales.LineItem{{SKU: "A1", SalePrice: 25, Quantity: 1}},
		})
	}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	require.Equal(t, int64(7), got[0].SellerID)
	require.Equal(t, int64(8), got[1].SellerID)
}

func TestAnalyzeTopProducts(t *testing.T) {
	data := &sales.Data{
		Sellers: []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
	}
	// Twelve SKUs with quantities 12..1; P11 and P12 tie at quantity 1 with
	// P11 seen first.
	var items []sales.LineItem
	for i := 1; i <= 12; i++ {
		sku := fmt.Sprintf("P%02d", i)
		data.Products = append(data.Products, sales.Product{SKU: sku, PurchasePrice: 1})
		qty := 13 - i
		if i >= 11 {
			qty = 1
		}
		items = append(items, sales.LineItem{SKU: sku, SalePrice: 2, Quantity: qty})
	}
	data.PurchaseRecords = []sales.PurchaseRecord{{SellerID: 1, TotalAmount: 100, Items: items}}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 1)

	top := got[0].TopProducts
	require.Len(t, top, 9)
	require.Equal(t, sales.ProductQuantity{SKU: "P01", Quantity: 12}, top[0])
	for i := 1; i < len(top); i++ {
		require.GreaterOrEqual(t, top[i-1].Quantity, top[i].Quantity)
	}
}

func TestAnalyzeTopProductsTieKeepsFirstSeenOrder(t *testing.T) {
	data := &sales.Data{
		Sellers:  []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		Products: []sales.Product{{SKU: "B2", PurchasePrice: 1}, {SKU: "A1", PurchasePrice: 1}},
		PurchaseRecords: []sales.PurchaseRecord{{
			SellerID:    1,
			TotalAmount: 20,
			Items: []sales.LineItem{
				{SKU: "B2", SalePrice: 2, Quantity: 3},
				{SKU: "A1", SalePrice: 2, Quantity: 3},
			},
		}},
	}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	require.Equal(t, sales.TopProducts{{SKU: "B2", Quantity: 3}, {SKU: "A1", Quantity: 3}}, got[0].TopProducts)
}

func TestAnalyzeRoundsOutputToTwoDecimals(t *testing.T) {
	data := &sales.Data{
		Sellers:  []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 3.333}},
		PurchaseRecords: []sales.PurchaseRecord{{
			SellerID:    1,
			TotalAmount: 19.999,
			Items:       []sales.LineItem{{SKU: "A1", Discount: 7, SalePrice: 6.666, Quantity: 3}},
		}},
	}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	for _, v := range []float64{got[0].Revenue, got[0].Profit, got[0].Bonus} {
		require.InDelta(t, v, math.Round(v*100)/100, 1e-9, "value %v has more than two decimals", v)
	}
	require.InDelta(t, 20.0, got[0].Revenue, 1e-9)
}

func TestAnalyzeIdempotent(t *testing.T) {
	data := &sales.Data{
		Sellers:  []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}, {ID: 2, FirstName: "John", LastName: "Roe"}},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 5}, {SKU: "B2", PurchasePrice: 2}},
		PurchaseRecords: []sales.PurchaseRecord{
			{SellerID: 1, TotalAmount: 30, Items: []sales.LineItem{{SKU: "A1", Discount: 10, SalePrice: 15, Quantity: 2}}},
			{SellerID: 2, TotalAmount: 12, Items: []sales.LineItem{{SKU: "B2", SalePrice: 6, Quantity: 2}}},
		},
	}

	first, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	second, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAnalyzeSellerCountInvariant(t *testing.T) {
	data := &sales.Data{
		Sellers: []sales.Seller{
			{ID: 3, FirstName: "No", LastName: "Sales"},
			{ID: 4, FirstName: "One", LastName: "Sale"},
		},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 1}},
		PurchaseRecords: []sales.PurchaseRecord{
			{SellerID: 4, TotalAmount: 5, Items: []sales.LineItem{{SKU: "A1", SalePrice: 5, Quantity: 1}}},
		},
	}

	got, err := sales.Analyze(data, defaultOptions())
	require.NoError(t, err)
	require.Len(t, got, len(data.Sellers))

	seen := map[int64]bool{}
	for _, row := range got {
		seen[row.SellerID] = true
	}
	require.True(t, seen[3] && seen[4])

	// A seller without sales still appears, with zeroed totals.
	last := got[len(got)-1]
	require.Equal(t, int64(3), last.SellerID)
	require.Zero(t, last.SalesCount)
	require.Empty(t, last.TopProducts)
}

// fixedRevenue ignores the line item and returns a constant, proving the
// analyzer defers entirely to the injected strategy.
type fixedRevenue struct{ value float64 }

func (f fixedRevenue) Revenue(_ sales.LineItem, _ sales.Product) float64 { return f.value }

func TestAnalyzeUsesInjectedRevenueStrategy(t *testing.T) {
	data := &sales.Data{
		Sellers:  []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		Products: []sales.Product{{SKU: "A1", PurchasePrice: 10}},
		PurchaseRecords: []sales.PurchaseRecord{{
			SellerID:    1,
			TotalAmount: 50,
			Items:       []sales.LineItem{{SKU: "A1", SalePrice: 25, Quantity: 2}},
		}},
	}

	got, err := sales.Analyze(data, &sales.Options{Revenue: fixedRevenue{value: 100}, Bonus: bonus.ByProfit{}})
	require.NoError(t, err)
	// profit = 100 - 10*2
	require.InDelta(t, 80.0, got[0].Profit, 1e-9)
}

func TestAnalyzeWrapsLookupErrors(t *testing.T) {
	data := &sales.Data{
		Sellers:         []sales.Seller{{ID: 1, FirstName: "Jane", LastName: "Doe"}},
		PurchaseRecords: []sales.PurchaseRecord{{SellerID: 2}},
	}
	_, err := sales.Analyze(data, defaultOptions())
	require.Error(t, err)
	require.True(t, errors.Is(err, sales.ErrUnknownSeller))
	require.Contains(t, err.Error(), "id 2")
}
