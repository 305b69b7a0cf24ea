package cartstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	t.Run("Embedded", func(t *testing.T) {
		products, err := LoadCatalog("")
		require.NoError(t, err)
		require.Len(t, products, 6)
		assert.Equal(t, "1", products[0].UID)
		assert.True(t, decimal.RequireFromString("12.99").Equal(products[0].Price))
		assert.True(t, decimal.RequireFromString("20.65").Equal(products[2].Price))
	})

	t.Run("From file", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "products.json")
		err := os.WriteFile(filename, []byte(`[{"id":"a","name":"Apple","price":"0.25"}]`), 0o600)
		require.NoError(t, err)

		products, err := LoadCatalog(filename)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Apple", products[0].Name)
		assert.Equal(t, "0.25", products[0].Price.String())
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := parseCatalog([]byte(`[{"id":"a","price":-1}]`))
		assert.EqualError(t, err, "catalog contains product a with negative price")
	})

	t.Run("Missing id", func(t *testing.T) {
		_, err := parseCatalog([]byte(`[{"price":1}]`))
		assert.EqualError(t, err, "catalog contains product without id")
	})
}
