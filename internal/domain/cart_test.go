package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_JSONRoundTrip(t *testing.T) {
	cart := domain.Cart{
		1: {Product: domain.Product{ID: 1, Title: "Phone", Price: decimal.RequireFromString("549.99"), Thumbnail: "t1", Image: "i1"}, Quantity: 2},
		7: {Product: domain.Product{ID: 7, Title: "Soap", Price: decimal.RequireFromString("5.5")}, Quantity: 1},
	}

	data, err := json.Marshal(cart)
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "1")
	assert.Equal(t, float64(1), raw["1"]["id"])
	assert.Equal(t, float64(2), raw["1"]["quantity"])
	assert.Equal(t, "Phone", raw["1"]["title"])

	var restored domain.Cart
	require.NoError(t, json.Unmarshal(data, &restored))

	diff := cmp.Diff(cart, restored, cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	}))
	assert.Empty(t, diff)
}

func TestCart_UnmarshalNumericPrice(t *testing.T) {
	data := []byte(`{"3":{"id":3,"title":"Mascara","price":9.99,"thumbnail":"t","image":"i","quantity":4}}`)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(data, &cart))

	require.Contains(t, cart, domain.ProductID(3))
	assert.True(t, decimal.RequireFromString("9.99").Equal(cart[3].Price))
	assert.Equal(t, 4, cart[3].Quantity)
	assert.NoError(t, cart.Validate())
}

func TestCart_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cart      domain.Cart
		wantError string
	}{
		{
			name: "empty cart: ok",
			cart: domain.Cart{},
		},
		{
			name:      "key mismatch: error",
			cart:      domain.Cart{2: {Product: domain.Product{ID: 3}, Quantity: 1}},
			wantError: "cart key[2] does not match product id[3]",
		},
		{
			name:      "zero quantity: error",
			cart:      domain.Cart{2: {Product: domain.Product{ID: 2}, Quantity: 0}},
			wantError: "product[2] quantity[0] is not positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cart.Validate()
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCart_Lines(t *testing.T) {
	cart := domain.Cart{
		9: {Product: domain.Product{ID: 9}, Quantity: 1},
		2: {Product: domain.Product{ID: 2}, Quantity: 3},
		5: {Product: domain.Product{ID: 5}, Quantity: 2},
	}

	lines := cart.Lines()

	require.Len(t, lines, 3)
	assert.Equal(t, domain.ProductID(2), lines[0].ID)
	assert.Equal(t, domain.ProductID(5), lines[1].ID)
	assert.Equal(t, domain.ProductID(9), lines[2].ID)
}

func TestCartLine_Subtotal(t *testing.T) {
	line := domain.CartLine{Product: domain.Product{ID: 1, Price: decimal.RequireFromString("10.25")}, Quantity: 3}

	subtotal := line.Subtotal()

	assert.True(t, decimal.RequireFromString("30.75").Equal(subtotal.Amount))
	assert.Equal(t, "GBP", subtotal.Currency.String())
}

func TestCart_Normalize(t *testing.T) {
	cart := domain.Cart{
		1: {Product: domain.Product{ID: 1}, Quantity: 2},
		2: {Product: domain.Product{ID: 2}, Quantity: 0},
		3: {Product: domain.Product{ID: 4}, Quantity: 1},
	}

	normalized, dropped := cart.Normalize()

	assert.Equal(t, 2, dropped)
	assert.Equal(t, domain.Cart{1: {Product: domain.Product{ID: 1}, Quantity: 2}}, normalized)
	assert.NoError(t, normalized.Validate())

	var nilCart domain.Cart
	normalized, dropped = nilCart.Normalize()
	assert.Zero(t, dropped)
	assert.NotNil(t, normalized)
}
