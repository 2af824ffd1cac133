package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the durable record created when a cart is submitted. Lines and
// the four monetary fields are frozen at creation; only the paid/delivered
// flags and their timestamps change afterwards.
type Order struct {
	ID                  uuid.UUID            `json:"id" db:"id"`
	UserID              string               `json:"userId" db:"user_id"`
	Lines               []OrderLine          `json:"lines"`
	ShippingAddress     Address              `json:"shippingAddress"`
	PaymentMethod       string               `json:"paymentMethod" db:"payment_method"`
	ItemsSubtotal       decimal.Decimal      `json:"itemsSubtotal" db:"items_subtotal"`
	ShippingFee         decimal.Decimal      `json:"shippingFee" db:"shipping_fee"`
	TaxAmount           decimal.Decimal      `json:"taxAmount" db:"tax_amount"`
	GrandTotal          decimal.Decimal      `json:"grandTotal" db:"grand_total"`
	IsPaid              bool                 `json:"isPaid" db:"is_paid"`
	PaidAt              *time.Time           `json:"paidAt,omitempty" db:"paid_at"`
	PaymentConfirmation *PaymentConfirmation `json:"paymentConfirmation,omitempty"`
	IsDelivered         bool                 `json:"isDelivered" db:"is_delivered"`
	DeliveredAt         *time.Time           `json:"deliveredAt,omitempty" db:"delivered_at"`
	CreatedAt           time.Time            `json:"createdAt" db:"created_at"`
}

// OrderLine is a frozen snapshot of a cart line at submission time. It keeps
// its own copy of the product display fields so later catalogue edits never
// alter a placed order.
type OrderLine struct {
	ID        uuid.UUID       `json:"-" db:"id"`
	OrderID   uuid.UUID       `json:"-" db:"order_id"`
	LineNo    int             `json:"-" db:"line_no"`
	ProductID string          `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Image     string          `json:"image" db:"image"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Qty       int             `json:"qty" db:"qty"`
}

// PaymentConfirmation records the payment gateway's confirmation details
// verbatim as supplied by the caller.
type PaymentConfirmation struct {
	ExternalID  string    `json:"externalId" db:"external_id"`
	Status      string    `json:"status" db:"status"`
	PayerEmail  string    `json:"payerEmail" db:"payer_email"`
	ConfirmedAt time.Time `json:"confirmedAt" db:"confirmed_at"`
}

// PaymentConfirmationRequest is the caller-facing payload for marking an
// order as paid.
type PaymentConfirmationRequest struct {
	ExternalID string `json:"externalId"`
	Status     string `json:"status"`
	PayerEmail string `json:"payerEmail"`
}
