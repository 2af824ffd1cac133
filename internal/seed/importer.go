package seed

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// Importer loads catalogue seed files and writes the merged result to the
// product repository.
type Importer struct {
	loader      Loader
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(loader Loader, productRepo repository.ProductRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		loader:      loader,
		productRepo: productRepo,
		logger:      logger.With().Str("component", "seed-importer").Logger(),
	}
}

// Import loads all sources concurrently, merges them by product ID (later
// sources win) and upserts the result. Returns the number of products written.
func (im *Importer) Import(ctx context.Context, sources []string) (int, error) {
	if len(sources) == 0 {
		return 0, fmt.Errorf("no seed sources configured")
	}

	im.logger.Info().
		Int("source_count", len(sources)).
		Msg("importing catalogue seed files")

	// Load all seed sources concurrently
	type loadResult struct {
		index    int
		products []model.Product
		err      error
	}

	resultChan := make(chan loadResult, len(sources))
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(index int, src string) {
			defer wg.Done()

			products, err := im.loader.Load(ctx, src)
			resultChan <- loadResult{
				index:    index,
				products: products,
				err:      err,
			}
		}(i, source)
	}

	// Wait for all loads to complete
	wg.Wait()
	close(resultChan)

	// Collect results in source order so merge precedence is deterministic
	results := make([][]model.Product, len(sources))
	for result := range resultChan {
		if result.err != nil {
			im.logger.Error().
				Err(result.err).
				Str("source", sources[result.index]).
				Msg("failed to load seed source")
			return 0, fmt.Errorf("failed to load seed source %s: %w", sources[result.index], result.err)
		}
		results[result.index] = result.products
	}

	merged := Merge(results...)

	if err := im.productRepo.Upsert(ctx, merged); err != nil {
		im.logger.Error().Err(err).Msg("failed to upsert catalogue")
		return 0, fmt.Errorf("failed to upsert catalogue: %w", err)
	}

	im.logger.Info().
		Int("product_count", len(merged)).
		Msg("catalogue seed import complete")

	return len(merged), nil
}
