package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements CartRepository using PostgreSQL. The cart is
// stored whole as a JSONB document: one session, one row, last write wins.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// Save writes the full cart, overwriting any prior value for the session.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now()

	payload, err := json.Marshal(cart)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", cart.SessionID).Msg("failed to marshal cart")
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	query := `
		INSERT INTO carts (session_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query, cart.SessionID, payload, cart.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", cart.SessionID).Msg("failed to save cart")
		return fmt.Errorf("failed to save cart: %w", err)
	}

	r.logger.Debug().
		Str("session_id", cart.SessionID).
		Int("line_count", len(cart.Lines)).
		Msg("cart saved")

	return nil
}

// Load retrieves the cart for a session. Returns nil when absent.
func (r *cartRepository) Load(ctx context.Context, sessionID string) (*model.Cart, error) {
	query := `SELECT payload FROM carts WHERE session_id = $1`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("session_id", sessionID).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to unmarshal cart")
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

// Delete removes the cart for a session.
func (r *cartRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM carts WHERE session_id = $1`

	_, err := r.pool.Exec(ctx, query, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
