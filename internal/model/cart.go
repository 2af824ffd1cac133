package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is applied to freshly created carts.
const DefaultPaymentMethod = "PayPal"

// CartLine is a single product-and-quantity entry in a cart.
// Display fields are copied from the catalogue when the line is added.
type CartLine struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Qty          int             `json:"qty"`
	CountInStock int             `json:"countInStock"`
}

// Address is a postal address captured during checkout.
type Address struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Cart is the session-scoped collection of selected items and in-progress
// checkout fields. The four monetary fields are derived from Lines and are
// recomputed on every mutation, never set directly.
type Cart struct {
	SessionID       string          `json:"sessionId"`
	Lines           []CartLine      `json:"lines"`
	ShippingAddress *Address        `json:"shippingAddress,omitempty"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsSubtotal   decimal.Decimal `json:"itemsSubtotal"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewCart returns an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID:     sessionID,
		Lines:         []CartLine{},
		PaymentMethod: DefaultPaymentMethod,
		ItemsSubtotal: decimal.Zero,
		ShippingFee:   decimal.Zero,
		TaxAmount:     decimal.Zero,
		GrandTotal:    decimal.Zero,
	}
}

// AddLineRequest represents the request payload for adding a cart line.
type AddLineRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}
