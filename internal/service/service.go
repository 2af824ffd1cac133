package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// GetAll retrieves products with pagination and optional keyword search.
	GetAll(ctx context.Context, limit, offset int, keyword string) ([]model.Product, error)

	// GetByID retrieves a single product by ID. Returns nil when no product
	// matches.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartService defines operations on the session cart. Every mutation
// recomputes the derived monetary fields and persists the full cart before
// returning.
type CartService interface {
	// Get loads the cart for a session, or returns a fresh empty cart when
	// none has been saved yet.
	Get(ctx context.Context, sessionID string) (*model.Cart, error)

	// AddLine adds a product to the cart. A line with the same product ID is
	// replaced entirely; the quantity is not summed.
	AddLine(ctx context.Context, sessionID, productID string, qty int) (*model.Cart, error)

	// RemoveLine removes the line with the given product ID.
	RemoveLine(ctx context.Context, sessionID, productID string) (*model.Cart, error)

	// SetShippingAddress records the checkout shipping address.
	SetShippingAddress(ctx context.Context, sessionID string, addr model.Address) (*model.Cart, error)

	// SetPaymentMethod records the checkout payment method.
	SetPaymentMethod(ctx context.Context, sessionID, method string) (*model.Cart, error)

	// Clear empties the cart's lines, keeping the checkout fields.
	Clear(ctx context.Context, sessionID string) (*model.Cart, error)

	// Reset replaces the whole cart with a fresh empty one, wiping the
	// shipping address and payment method as well.
	Reset(ctx context.Context, sessionID string) (*model.Cart, error)
}

// OrderService defines the order lifecycle: submit, pay, deliver, read.
type OrderService interface {
	// Submit creates an order from the session's priced cart. The monetary
	// fields are re-derived server-side from current catalogue prices; the
	// cart is cleared on success.
	Submit(ctx context.Context, userID, sessionID string) (*model.Order, error)

	// GetByID retrieves an order. Non-admin callers may only read their own.
	GetByID(ctx context.Context, id uuid.UUID, callerID string, isAdmin bool) (*model.Order, error)

	// ListMine retrieves all orders owned by the caller.
	ListMine(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves every order in the system.
	ListAll(ctx context.Context) ([]model.Order, error)

	// MarkPaid records a payment confirmation on a not-yet-paid order.
	MarkPaid(ctx context.Context, id uuid.UUID, req *model.PaymentConfirmationRequest) (*model.Order, error)

	// MarkDelivered records delivery on a not-yet-delivered order.
	MarkDelivered(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
