package seed

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"storefront/internal/model"
)

// parseCatalog decodes a seed stream into products. The source name is used
// to detect gzip compression and to label errors.
func parseCatalog(r io.Reader, source string) ([]model.Product, error) {
	if strings.HasSuffix(source, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", source, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	var products []model.Product
	if err := json.NewDecoder(r).Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode seed file %s: %w", source, err)
	}

	now := time.Now()
	for i, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("seed file %s: product %d has no ID", source, i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("seed file %s: product %s has no name", source, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("seed file %s: product %s has a negative price", source, p.ID)
		}
		if p.CountInStock < 0 {
			return nil, fmt.Errorf("seed file %s: product %s has negative stock", source, p.ID)
		}
		if p.CreatedAt.IsZero() {
			products[i].CreatedAt = now
		}
	}

	return products, nil
}

// Merge combines products from multiple sources, de-duplicating by product
// ID. When the same ID appears more than once the later source wins; first
// appearance decides the ordering.
func Merge(batches ...[]model.Product) []model.Product {
	index := make(map[string]int)
	var merged []model.Product

	for _, batch := range batches {
		for _, p := range batch {
			if i, seen := index[p.ID]; seen {
				merged[i] = p
				continue
			}
			index[p.ID] = len(merged)
			merged = append(merged, p)
		}
	}

	return merged
}
