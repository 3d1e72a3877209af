package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/quicktill/quicktill/internal/domain"
	"github.com/quicktill/quicktill/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSKU    = errors.New("duplicate sku")
)

// Catalog is an immutable, ordered product list with a sku index.
type Catalog struct {
	items []domain.Product
	index map[string]domain.Product
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		items: make([]domain.Product, 0, len(products)),
		index: make(map[string]domain.Product, len(products)),
	}

	for _, p := range products {
		if p.SKU == "" {
			return nil, fmt.Errorf("product %q: sku is empty", p.Name)
		}
		if p.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("product %s: unit price is negative", p.SKU)
		}
		if _, exists := c.index[p.SKU]; exists {
			return nil, fmt.Errorf("product %s: %w", p.SKU, ErrDuplicateSKU)
		}

		c.items = append(c.items, p)
		c.index[p.SKU] = p
	}

	return c, nil
}

type fileEntry struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// LoadFile reads a JSON product list and prices every entry in the given
// currency. The file is the full catalog; there is no update path.
func LoadFile(path string, cur currency.Unit) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var entries []fileEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	products := make([]domain.Product, 0, len(entries))
	for _, e := range entries {
		products = append(products, domain.Product{
			SKU:  e.SKU,
			Name: e.Name,
			UnitPrice: domain.Money{
				Amount:   e.UnitPrice,
				Currency: cur,
			},
		})
	}

	c, err := New(products)
	if err != nil {
		return nil, fmt.Errorf("catalog.New: %w", err)
	}

	return c, nil
}

func (c *Catalog) List() []domain.Product {
	items := make([]domain.Product, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Catalog) Get(sku string) (domain.Product, error) {
	if sku == "" {
		return domain.Product{}, fmt.Errorf("sku is empty")
	}

	p, ok := c.index[sku]
	if !ok {
		return domain.Product{}, fmt.Errorf("sku %s: %w", sku, ErrProductNotFound)
	}

	return p, nil
}

var _ port.Catalog = (*Catalog)(nil)
