package pricing

import (
	"github.com/shopspring/decimal"

	"storefront/internal/model"
)

// Totals holds the four derived monetary fields for a cart or order.
type Totals struct {
	ItemsSubtotal decimal.Decimal
	ShippingFee   decimal.Decimal
	TaxAmount     decimal.Decimal
	GrandTotal    decimal.Decimal
}

// Config holds the pricing rules applied by the engine.
type Config struct {
	// FreeShippingThreshold is the items subtotal above which shipping is
	// free. The comparison is strict: a subtotal exactly at the threshold
	// still pays the shipping fee.
	FreeShippingThreshold decimal.Decimal

	// ShippingFee is charged when the subtotal does not exceed the threshold.
	ShippingFee decimal.Decimal

	// TaxRate is applied to the items subtotal only; shipping is untaxed.
	TaxRate decimal.Decimal
}

// DefaultConfig returns the standard pricing rules: free shipping over
// 100.00, a flat 10.00 fee otherwise, and 15% tax on items.
func DefaultConfig() Config {
	return Config{
		FreeShippingThreshold: decimal.NewFromInt(100),
		ShippingFee:           decimal.NewFromInt(10),
		TaxRate:               decimal.NewFromFloat(0.15),
	}
}

// Engine computes derived monetary fields from cart lines. It is pure and
// deterministic: the same lines always produce the same totals.
type Engine struct {
	cfg Config
}

// NewEngine creates a pricing engine with the given rules.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Recompute derives the four monetary fields from the given lines.
//
// Each intermediate value is rounded to two decimal places independently,
// half away from zero at the cent boundary: the subtotal is rounded first,
// tax is computed from the rounded subtotal and rounded again, and the grand
// total is the sum of the already-rounded parts, re-rounded. The order of
// rounding is deliberate and must not be reordered: tax computed on the
// unrounded subtotal can drift by a cent.
func (e *Engine) Recompute(lines []model.CartLine) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	subtotal = subtotal.Round(2)

	// Strictly greater than: a subtotal of exactly the threshold still pays.
	fee := e.cfg.ShippingFee
	if subtotal.GreaterThan(e.cfg.FreeShippingThreshold) {
		fee = decimal.Zero
	}

	tax := subtotal.Mul(e.cfg.TaxRate).Round(2)

	total := subtotal.Add(fee).Add(tax).Round(2)

	return Totals{
		ItemsSubtotal: subtotal,
		ShippingFee:   fee,
		TaxAmount:     tax,
		GrandTotal:    total,
	}
}

// Apply recomputes the cart's derived monetary fields in place.
func (e *Engine) Apply(cart *model.Cart) {
	totals := e.Recompute(cart.Lines)
	cart.ItemsSubtotal = totals.ItemsSubtotal
	cart.ShippingFee = totals.ShippingFee
	cart.TaxAmount = totals.TaxAmount
	cart.GrandTotal = totals.GrandTotal
}
