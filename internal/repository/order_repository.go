package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id,
			ship_address, ship_city, ship_postal_code, ship_country,
			payment_method,
			items_subtotal, shipping_fee, tax_amount, grand_total,
			is_paid, is_delivered, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.ShippingAddress.Address,
		order.ShippingAddress.City,
		order.ShippingAddress.PostalCode,
		order.ShippingAddress.Country,
		order.PaymentMethod,
		order.ItemsSubtotal,
		order.ShippingFee,
		order.TaxAmount,
		order.GrandTotal,
		order.IsPaid,
		order.IsDelivered,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// CreateOrderLines inserts the order's line snapshots within the provided transaction.
func (r *orderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_lines (id, order_id, line_no, product_id, name, image, price, qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query, line.ID, line.OrderID, line.LineNo, line.ProductID, line.Name, line.Image, line.Price, line.Qty)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(lines); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", lines[i].OrderID.String()).
				Str("product_id", lines[i].ProductID).
				Msg("failed to create order line")
			return fmt.Errorf("failed to create order line: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(lines)).
		Msg("order lines created successfully")

	return nil
}

const orderColumns = `
	id, user_id,
	ship_address, ship_city, ship_postal_code, ship_country,
	payment_method,
	items_subtotal, shipping_fee, tax_amount, grand_total,
	is_paid, paid_at,
	payment_external_id, payment_status, payment_payer_email, payment_confirmed_at,
	is_delivered, delivered_at, created_at
`

// scanOrder reads a full order row, folding the nullable payment confirmation
// columns into a PaymentConfirmation when present.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	var extID, status, payerEmail *string
	var confirmedAt *time.Time

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ShippingAddress.Address,
		&order.ShippingAddress.City,
		&order.ShippingAddress.PostalCode,
		&order.ShippingAddress.Country,
		&order.PaymentMethod,
		&order.ItemsSubtotal,
		&order.ShippingFee,
		&order.TaxAmount,
		&order.GrandTotal,
		&order.IsPaid,
		&order.PaidAt,
		&extID,
		&status,
		&payerEmail,
		&confirmedAt,
		&order.IsDelivered,
		&order.DeliveredAt,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if extID != nil {
		order.PaymentConfirmation = &model.PaymentConfirmation{
			ExternalID: *extID,
		}
		if status != nil {
			order.PaymentConfirmation.Status = *status
		}
		if payerEmail != nil {
			order.PaymentConfirmation.PayerEmail = *payerEmail
		}
		if confirmedAt != nil {
			order.PaymentConfirmation.ConfirmedAt = *confirmedAt
		}
	}

	return &order, nil
}

// GetByID retrieves an order by its ID along with its line snapshots.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	orderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, orderQuery, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	lines, err := r.linesForOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines

	return order, nil
}

// linesForOrder retrieves the line snapshots for a single order, in
// submission order.
func (r *orderRepository) linesForOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderLine, error) {
	query := `
		SELECT id, order_id, line_no, product_id, name, image, price, qty
		FROM order_lines
		WHERE order_id = $1
		ORDER BY line_no
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order lines")
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var line model.OrderLine
		err := rows.Scan(&line.ID, &line.OrderID, &line.LineNo, &line.ProductID, &line.Name, &line.Image, &line.Price, &line.Qty)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line rows")
		return nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return lines, nil
}

// listOrders runs an order query and loads the lines for each result.
func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	for i := range orders {
		lines, err := r.linesForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

// ListByUser retrieves all orders owned by a user, oldest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at`
	return r.listOrders(ctx, query, userID)
}

// ListAll retrieves every order, oldest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at`
	return r.listOrders(ctx, query)
}

// MarkPaid conditionally records payment. The WHERE clause guards the
// transition: two racing calls cannot both succeed.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time, conf model.PaymentConfirmation) (bool, error) {
	query := `
		UPDATE orders
		SET is_paid = TRUE,
			paid_at = $2,
			payment_external_id = $3,
			payment_status = $4,
			payment_payer_email = $5,
			payment_confirmed_at = $6
		WHERE id = $1 AND is_paid = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, id, paidAt, conf.ExternalID, conf.Status, conf.PayerEmail, conf.ConfirmedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// MarkDelivered conditionally records delivery.
func (r *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET is_delivered = TRUE,
			delivered_at = $2
		WHERE id = $1 AND is_delivered = FALSE
	`

	tag, err := r.pool.Exec(ctx, query, id, deliveredAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order delivered")
		return false, fmt.Errorf("failed to mark order delivered: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
