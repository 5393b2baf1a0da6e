package sales

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Seller identifies a salesperson in the input dataset.
type Seller struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// Product describes a sellable item keyed by its SKU.
type Product struct {
	SKU           string  `json:"sku" validate:"required"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
}

// LineItem is one product entry within a purchase record. Discount is a
// percentage in [0, 100]; values outside the range are the caller's
// responsibility and propagate arithmetically through revenue strategies.
type LineItem struct {
	SKU       string  `json:"sku" validate:"required"`
	Discount  float64 `json:"discount" validate:"gte=0,lte=100"`
	SalePrice float64 `json:"sale_price"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
}

// PurchaseRecord is a single receipt attributed to one seller.
type PurchaseRecord struct {
	SellerID    int64      `json:"seller_id"`
	TotalAmount float64    `json:"total_amount"`
	Items       []LineItem `json:"items" validate:"dive"`
}

// Data bundles the three input collections consumed by Analyze.
type Data struct {
	Sellers         []Seller         `json:"sellers" validate:"required,dive"`
	Products        []Product        `json:"products" validate:"required,dive"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" validate:"dive"`
}

// Standing is the read-only view of a seller's accumulated totals handed to
// bonus strategies after ranking.
type Standing struct {
	SellerID   int64
	Name       string
	Revenue    float64
	Profit     float64
	SalesCount int
}

// RevenueStrategy computes the revenue of a single line item. The product is
// passed alongside the item so alternate formulas can price off cost data.
type RevenueStrategy interface {
	Revenue(item LineItem, product Product) float64
}

// BonusStrategy computes a seller's bonus from its zero-based rank in the
// profit ordering, the total seller count, and the seller's standing.
type BonusStrategy interface {
	Bonus(index, total int, s Standing) float64
}

// Options carries the strategy injections required by Analyze.
type Options struct {
	Revenue RevenueStrategy
	Bonus   BonusStrategy
}

// ProductQuantity pairs a SKU with its cumulative sold quantity.
type ProductQuantity struct {
	SKU      string
	Quantity int
}

// TopProducts is an ordered SKU-to-quantity mapping. It marshals to a JSON
// object whose keys keep the slice order, so ranked output survives encoding.
type TopProducts []ProductQuantity

// SellerResult is one row of the ranked report. Monetary fields are rounded
// to two decimal places.
type SellerResult struct {
	SellerID    int64       `json:"seller_id"`
	Name        string      `json:"name"`
	Revenue     float64     `json:"revenue"`
	Profit      float64     `json:"profit"`
	SalesCount  int         `json:"sales_count"`
	TopProducts TopProducts `json:"top_products"`
	Bonus       float64     `json:"bonus"`
}

// MarshalJSON renders the mapping as a JSON object in slice order.
func (t TopProducts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pq := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pq.SKU)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(pq.Quantity))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores the mapping preserving document key order.
func (t *TopProducts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("top_products: expected object, got %v", tok)
	}
	out := TopProducts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		sku, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("top_products: invalid key %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("top_products: invalid quantity for %q", sku)
		}
		qty, err := strconv.Atoi(num.String())
		if err != nil {
			return fmt.Errorf("top_products: quantity for %q: %w", sku, err)
		}
		out = append(out, ProductQuantity{SKU: sku, Quantity: qty})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*t = out
	return nil
}
