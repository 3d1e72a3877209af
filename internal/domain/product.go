package domain

// Product is a catalog entry. Products are created at catalog load and
// never mutated afterwards.
type Product struct {
	SKU       string
	Name      string
	UnitPrice Money
}
