package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/quicktill/quicktill/internal/catalog"
	"github.com/quicktill/quicktill/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		products  []domain.Product
		wantError string
	}{
		{
			name: "valid products: ok",
			products: []domain.Product{
				product("RICE001", "Fragrant Rice 5kg", "80.00"),
				product("TEA001", "Ceylon Tea 500g", "200.00"),
			},
		},
		{
			name:     "empty catalog: ok",
			products: nil,
		},
		{
			name: "duplicate sku: error",
			products: []domain.Product{
				product("RICE001", "Fragrant Rice 5kg", "80.00"),
				product("RICE001", "Broken Rice 5kg", "60.00"),
			},
			wantError: "duplicate sku",
		},
		{
			name: "empty sku: error",
			products: []domain.Product{
				product("", "Nameless", "1.00"),
			},
			wantError: "sku is empty",
		},
		{
			name: "negative price: error",
			products: []domain.Product{
				product("RICE001", "Fragrant Rice 5kg", "-80.00"),
			},
			wantError: "unit price is negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.New(tt.products)
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Len(t, c.List(), len(tt.products))
		})
	}
}

func TestGet(t *testing.T) {
	c, err := catalog.New([]domain.Product{
		product("RICE001", "Fragrant Rice 5kg", "80.00"),
	})
	require.NoError(t, err)

	p, err := c.Get("RICE001")
	require.NoError(t, err)
	assert.Equal(t, "Fragrant Rice 5kg", p.Name)

	_, err = c.Get("TEA001")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	_, err = c.Get("")
	assert.EqualError(t, err, "sku is empty")
}

func TestListIsOrderedCopy(t *testing.T) {
	products := []domain.Product{
		product("RICE001", "Fragrant Rice 5kg", "80.00"),
		product("TEA001", "Ceylon Tea 500g", "200.00"),
	}

	c, err := catalog.New(products)
	require.NoError(t, err)

	listed := c.List()
	listed[0].Name = "tampered"

	fresh := c.List()
	assert.Equal(t, "Fragrant Rice 5kg", fresh[0].Name)
	assert.Equal(t, "RICE001", fresh[0].SKU)
	assert.Equal(t, "TEA001", fresh[1].SKU)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[
		{"sku": "RICE001", "name": "Fragrant Rice 5kg", "unit_price": "80.00"},
		{"sku": "TEA001", "name": "Ceylon Tea 500g", "unit_price": "200.00"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := catalog.LoadFile(path, currency.USD)
	require.NoError(t, err)

	want := []domain.Product{
		product("RICE001", "Fragrant Rice 5kg", "80.00"),
		product("TEA001", "Ceylon Tea 500g", "200.00"),
	}

	opts := cmp.Options{
		cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) }),
		cmp.Comparer(func(x, y currency.Unit) bool { return x.String() == y.String() }),
	}
	assert.Empty(t, cmp.Diff(want, c.List(), opts))
}

func TestLoadFileErrors(t *testing.T) {
	_, err := catalog.LoadFile(filepath.Join(t.TempDir(), "missing.json"), currency.USD)
	require.ErrorContains(t, err, "os.ReadFile")

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err = catalog.LoadFile(path, currency.USD)
	require.ErrorContains(t, err, "json.Unmarshal")
}

func product(sku, name, price string) domain.Product {
	return domain.Product{
		SKU:  sku,
		Name: name,
		UnitPrice: domain.Money{
			Amount:   decimal.RequireFromString(price),
			Currency: currency.USD,
		},
	}
}
