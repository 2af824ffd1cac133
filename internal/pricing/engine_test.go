package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/model"
)

func line(productID string, price string, qty int) model.CartLine {
	return model.CartLine{
		ProductID: productID,
		Name:      "Product " + productID,
		Price:     decimal.RequireFromString(price),
		Qty:       qty,
	}
}

func TestEngine_Recompute(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	tests := []struct {
		name          string
		lines         []model.CartLine
		itemsSubtotal string
		shippingFee   string
		taxAmount     string
		grandTotal    string
	}{
		{
			name:          "Empty cart yields zeros except shipping fee",
			lines:         nil,
			itemsSubtotal: "0",
			shippingFee:   "10",
			taxAmount:     "0",
			grandTotal:    "10",
		},
		{
			name:          "Subtotal exactly at threshold still pays shipping",
			lines:         []model.CartLine{line("P001", "50.00", 2)},
			itemsSubtotal: "100.00",
			shippingFee:   "10",
			taxAmount:     "15.00",
			grandTotal:    "125.00",
		},
		{
			name:          "Subtotal above threshold ships free",
			lines:         []model.CartLine{line("P001", "60.00", 2)},
			itemsSubtotal: "120.00",
			shippingFee:   "0",
			taxAmount:     "18.00",
			grandTotal:    "138.00",
		},
		{
			name:          "One cent over the threshold ships free",
			lines:         []model.CartLine{line("P001", "100.01", 1)},
			itemsSubtotal: "100.01",
			shippingFee:   "0",
			taxAmount:     "15.00",
			grandTotal:    "115.01",
		},
		{
			name: "Multiple lines sum before rounding",
			lines: []model.CartLine{
				line("P001", "19.99", 3),
				line("P002", "5.50", 2),
			},
			itemsSubtotal: "70.97",
			shippingFee:   "10",
			taxAmount:     "10.65",
			grandTotal:    "91.62",
		},
		{
			name:          "Sub-cent prices round half up at the cent boundary",
			lines:         []model.CartLine{line("P001", "0.005", 1)},
			itemsSubtotal: "0.01",
			shippingFee:   "10",
			taxAmount:     "0.00",
			grandTotal:    "10.01",
		},
		{
			name:          "Tax rounds half up independently of the total",
			lines:         []model.CartLine{line("P001", "0.10", 1)},
			itemsSubtotal: "0.10",
			shippingFee:   "10",
			taxAmount:     "0.02",
			grandTotal:    "10.12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := engine.Recompute(tt.lines)

			assert.True(t, totals.ItemsSubtotal.Equal(decimal.RequireFromString(tt.itemsSubtotal)),
				"itemsSubtotal: got %s, want %s", totals.ItemsSubtotal, tt.itemsSubtotal)
			assert.True(t, totals.ShippingFee.Equal(decimal.RequireFromString(tt.shippingFee)),
				"shippingFee: got %s, want %s", totals.ShippingFee, tt.shippingFee)
			assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString(tt.taxAmount)),
				"taxAmount: got %s, want %s", totals.TaxAmount, tt.taxAmount)
			assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString(tt.grandTotal)),
				"grandTotal: got %s, want %s", totals.GrandTotal, tt.grandTotal)
		})
	}
}

func TestEngine_Recompute_OrderIndependent(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	forward := []model.CartLine{
		line("P001", "12.34", 2),
		line("P002", "0.99", 7),
		line("P003", "45.05", 1),
	}
	reversed := []model.CartLine{forward[2], forward[1], forward[0]}

	a := engine.Recompute(forward)
	b := engine.Recompute(reversed)

	assert.True(t, a.ItemsSubtotal.Equal(b.ItemsSubtotal))
	assert.True(t, a.GrandTotal.Equal(b.GrandTotal))
}

func TestEngine_Recompute_GrandTotalIsSumOfRoundedParts(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	lines := []model.CartLine{
		line("P001", "33.33", 3),
		line("P002", "7.77", 2),
	}

	totals := engine.Recompute(lines)
	want := totals.ItemsSubtotal.Add(totals.ShippingFee).Add(totals.TaxAmount).Round(2)
	assert.True(t, totals.GrandTotal.Equal(want))
}

func TestEngine_Apply_Idempotent(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	cart := model.NewCart("session-1")
	cart.Lines = []model.CartLine{line("P001", "50.00", 2)}

	engine.Apply(cart)
	first := *cart
	engine.Apply(cart)

	require.True(t, cart.ItemsSubtotal.Equal(first.ItemsSubtotal))
	require.True(t, cart.ShippingFee.Equal(first.ShippingFee))
	require.True(t, cart.TaxAmount.Equal(first.TaxAmount))
	require.True(t, cart.GrandTotal.Equal(first.GrandTotal))
}

func TestEngine_CustomConfig(t *testing.T) {
	engine := NewEngine(Config{
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingFee:           decimal.NewFromInt(5),
		TaxRate:               decimal.NewFromFloat(0.10),
	})

	totals := engine.Recompute([]model.CartLine{line("P001", "30.00", 1)})
	assert.True(t, totals.ShippingFee.Equal(decimal.NewFromInt(5)))
	assert.True(t, totals.TaxAmount.Equal(decimal.RequireFromString("3.00")))
	assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("38.00")))
}
