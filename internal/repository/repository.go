package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves products with pagination and optional keyword search
	// on the product name.
	GetAll(ctx context.Context, limit, offset int, keyword string) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when no
	// product matches.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []string) ([]model.Product, error)

	// ValidateProductsExist checks if all provided product IDs exist.
	// Returns model.ErrProductNotFound if any ID does not.
	ValidateProductsExist(ctx context.Context, ids []string) error

	// Upsert inserts or replaces products by ID. Used by the catalogue seeder.
	Upsert(ctx context.Context, products []model.Product) error
}

// CartRepository defines the durable store for session carts. Each cart is
// persisted whole as a JSON document keyed by session ID.
type CartRepository interface {
	// Save writes the full cart, overwriting any prior value for the session.
	Save(ctx context.Context, cart *model.Cart) error

	// Load retrieves the cart for a session. Returns nil when absent.
	Load(ctx context.Context, sessionID string) (*model.Cart, error)

	// Delete removes the cart for a session.
	Delete(ctx context.Context, sessionID string) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderLines inserts the order's line snapshots within the
	// provided transaction.
	CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error

	// GetByID retrieves an order with its lines. Returns nil when no order
	// matches.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser retrieves all orders owned by a user, oldest first.
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)

	// ListAll retrieves every order, oldest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// MarkPaid conditionally records payment: the update applies only while
	// is_paid is false. Returns false when no row was updated.
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, conf model.PaymentConfirmation) (bool, error)

	// MarkDelivered conditionally records delivery: the update applies only
	// while is_delivered is false. Returns false when no row was updated.
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error)
}
