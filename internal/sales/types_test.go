package sales_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Crombex/sales-bonus/internal/sales"
)

func TestTopProductsJSONKeepsOrder(t *testing.T) {
	top := sales.TopProducts{
		{SKU: "B2", Quantity: 5},
		{SKU: "A1", Quantity: 5},
		{SKU: "C3", Quantity: 1},
	}

	encoded, err := json.Marshal(top)
	require.NoError(t, err)
	require.Equal(t, `{"B2":5,"A1":5,"C3":1}`, string(encoded))

	var decoded sales.TopProducts
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, top, decoded)
}

func TestTopProductsEmptyMarshalsToObject(t *testing.T) {
	encoded, err := json.Marshal(sales.TopProducts{})
	require.NoError(t, err)
	require.Equal(t, `{}`, string(encoded))
}
