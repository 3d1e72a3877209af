package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SoldItem is a value copy of a cart line item taken at finalize time.
// It carries no reference back to the catalog or the ledger, so later
// cart mutations cannot alter a past sale.
type SoldItem struct {
	SKU         string
	ProductName string
	UnitPrice   Money
	Quantity    int
	LineTotal   Money
}

// Sale is the immutable record of a finalized checkout. Its totals are
// frozen at finalize time and equal the ledger's totals at that instant.
type Sale struct {
	ID      uuid.UUID
	Items   []SoldItem
	TaxRate decimal.Decimal

	Subtotal Money
	Tax      Money
	Total    Money

	CreatedAt time.Time
}
