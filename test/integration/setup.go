package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			image VARCHAR(255) NOT NULL DEFAULT '',
			brand VARCHAR(100) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
			count_in_stock INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);

		CREATE TABLE IF NOT EXISTS carts (
			session_id VARCHAR(100) PRIMARY KEY,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id VARCHAR(100) NOT NULL,
			ship_address VARCHAR(255) NOT NULL,
			ship_city VARCHAR(100) NOT NULL,
			ship_postal_code VARCHAR(20) NOT NULL,
			ship_country VARCHAR(100) NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			items_subtotal DECIMAL(10, 2) NOT NULL,
			shipping_fee DECIMAL(10, 2) NOT NULL,
			tax_amount DECIMAL(10, 2) NOT NULL,
			grand_total DECIMAL(10, 2) NOT NULL,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at TIMESTAMPTZ,
			payment_external_id VARCHAR(100),
			payment_status VARCHAR(50),
			payment_payer_email VARCHAR(255),
			payment_confirmed_at TIMESTAMPTZ,
			is_delivered BOOLEAN NOT NULL DEFAULT FALSE,
			delivered_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);

		CREATE TABLE IF NOT EXISTS order_lines (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			line_no SMALLINT NOT NULL DEFAULT 0,
			product_id VARCHAR(50) NOT NULL,
			name VARCHAR(255) NOT NULL,
			image VARCHAR(255) NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			qty INTEGER NOT NULL CHECK (qty > 0)
		);
		CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines(order_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data into the database.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []model.Product{
		{ID: "P001", Name: "Airpods", Image: "/images/airpods.jpg", Brand: "Apple", Category: "Electronics", Price: decimal.RequireFromString("89.99"), CountInStock: 10},
		{ID: "P002", Name: "Camera", Image: "/images/camera.jpg", Brand: "Canon", Category: "Electronics", Price: decimal.RequireFromString("929.99"), CountInStock: 5},
		{ID: "P003", Name: "Keyboard", Image: "/images/keyboard.jpg", Brand: "Logitech", Category: "Electronics", Price: decimal.RequireFromString("50.00"), CountInStock: 7},
		{ID: "P004", Name: "Mouse", Image: "/images/mouse.jpg", Brand: "Logitech", Category: "Electronics", Price: decimal.RequireFromString("19.99"), CountInStock: 12},
		{ID: "P005", Name: "Phone", Image: "/images/phone.jpg", Brand: "Samsung", Category: "Electronics", Price: decimal.RequireFromString("599.99"), CountInStock: 3},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, image, brand, category, description, price, count_in_stock)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.ID, p.Name, p.Image, p.Brand, p.Category, p.Description, p.Price, p.CountInStock,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.ID, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_lines", "orders", "carts", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
