package seed

import (
	"context"

	"storefront/internal/model"
)

// Loader defines the interface for reading catalogue seed files. A seed file
// is a JSON array of products, optionally gzipped (".gz" suffix).
type Loader interface {
	// Load reads one seed source and returns the products it contains.
	Load(ctx context.Context, source string) ([]model.Product, error)
}
