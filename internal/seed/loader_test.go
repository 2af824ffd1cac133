package seed

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
	{"id": "P001", "name": "Keyboard", "image": "/images/keyboard.jpg", "price": "49.99", "countInStock": 5},
	{"id": "P002", "name": "Mouse", "image": "/images/mouse.jpg", "price": "19.99", "countInStock": 12}
]`

// createSeedFile writes a seed file, gzipped when the name ends in ".gz".
func createSeedFile(t *testing.T, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	if filepath.Ext(filename) == ".gz" {
		gzipWriter := gzip.NewWriter(file)
		defer gzipWriter.Close()
		_, err = gzipWriter.Write([]byte(content))
		require.NoError(t, err)
		return filePath
	}

	_, err = file.WriteString(content)
	require.NoError(t, err)
	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	logger := zerolog.Nop()
	loader := NewFileLoader(logger)

	filePath := createSeedFile(t, "products.json", sampleCatalog)

	products, err := loader.Load(context.Background(), filePath)
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "P001", products[0].ID)
	assert.Equal(t, "Keyboard", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("49.99")))
}

func TestFileLoader_Load_Gzipped(t *testing.T) {
	logger := zerolog.Nop()
	loader := NewFileLoader(logger)

	filePath := createSeedFile(t, "products.json.gz", sampleCatalog)

	products, err := loader.Load(context.Background(), filePath)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestFileLoader_Load_FileNotFound(t *testing.T) {
	logger := zerolog.Nop()
	loader := NewFileLoader(logger)

	_, err := loader.Load(context.Background(), "/nonexistent/products.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open seed file")
}

func TestFileLoader_Load_InvalidContent(t *testing.T) {
	logger := zerolog.Nop()
	loader := NewFileLoader(logger)

	filePath := createSeedFile(t, "products.json", `{"not": "an array"}`)

	_, err := loader.Load(context.Background(), filePath)
	require.Error(t, err)
}

func TestFileLoader_Load_CancelledContext(t *testing.T) {
	logger := zerolog.Nop()
	loader := NewFileLoader(logger)

	filePath := createSeedFile(t, "products.json", sampleCatalog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, filePath)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
