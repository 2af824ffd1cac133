package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repository"
	"storefront/internal/seed"
)

// Seeds the product catalogue from the configured seed sources, either local
// JSON files or objects in S3.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting catalogue seeder")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	productRepo := repository.NewProductRepository(pool, logger)

	var loader seed.Loader
	if cfg.Seed.S3Enabled {
		loader, err = seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 loader: %w", err)
		}
	} else {
		loader = seed.NewFileLoader(logger)
	}

	importer := seed.NewImporter(loader, productRepo, logger)

	count, err := importer.Import(ctx, cfg.Seed.Sources)
	if err != nil {
		return fmt.Errorf("seed import failed: %w", err)
	}

	logger.Info().Int("product_count", count).Msg("catalogue seeded")

	return nil
}
