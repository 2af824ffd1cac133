package seed

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for seed files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a seed file from disk.
func (l *fileLoader) Load(ctx context.Context, source string) ([]model.Product, error) {
	l.logger.Info().Str("file", source).Msg("loading seed file")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", source, err)
	}
	defer file.Close()

	products, err := parseCatalog(file, source)
	if err != nil {
		l.logger.Error().Err(err).Str("file", source).Msg("failed to parse seed file")
		return nil, err
	}

	l.logger.Info().
		Str("file", source).
		Int("products_loaded", len(products)).
		Msg("seed file loaded successfully")

	return products, nil
}
