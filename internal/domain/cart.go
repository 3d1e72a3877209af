package domain

// LineItem aggregates repeated adds of one product into a single cart
// row. Quantity is always at least 1; a line item with quantity 0 is
// removed from the ledger instead.
type LineItem struct {
	Product  Product
	Quantity int
}

func (li LineItem) LineTotal() Money {
	return li.Product.UnitPrice.Mul(li.Quantity)
}
