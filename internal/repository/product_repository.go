package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, image, brand, category, description, price, count_in_stock, created_at`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Brand, &p.Category, &p.Description, &p.Price, &p.CountInStock, &p.CreatedAt)
	return p, err
}

// GetAll retrieves products with pagination and optional keyword search on
// the product name.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int, keyword string) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($3 = '' OR name ILIKE '%' || $3 || '%')
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset, keyword)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Str("keyword", keyword).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).
			Int("id_count", len(ids)).
			Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ValidateProductsExist checks if all provided product IDs exist.
func (r *productRepository) ValidateProductsExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := `SELECT COUNT(*) FROM products WHERE id = ANY($1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, ids).Scan(&count); err != nil {
		r.logger.Error().Err(err).
			Int("id_count", len(ids)).
			Msg("failed to count products")
		return fmt.Errorf("failed to validate products: %w", err)
	}

	if count != len(ids) {
		r.logger.Debug().
			Int("requested", len(ids)).
			Int("found", count).
			Msg("products missing")
		return model.ErrProductNotFound
	}

	return nil
}

// Upsert inserts or replaces products by ID.
func (r *productRepository) Upsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (id, name, image, brand, category, description, price, count_in_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			image = EXCLUDED.image,
			brand = EXCLUDED.brand,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			count_in_stock = EXCLUDED.count_in_stock
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.ID, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price, p.CountInStock, p.CreatedAt)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(products); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).
				Str("product_id", products[i].ID).
				Msg("failed to upsert product")
			return fmt.Errorf("failed to upsert product %s: %w", products[i].ID, err)
		}
	}

	r.logger.Info().Int("count", len(products)).Msg("products upserted")

	return nil
}
