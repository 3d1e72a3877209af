package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quicktill/quicktill/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var (
	ErrItemNotFound    = errors.New("line item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Ledger aggregates catalog products into line items, one per distinct
// sku, in insertion order. Totals are recomputed from the current line
// items on every read, never cached.
//
// A single mutex serializes all access, so the ledger stays consistent
// even when UI callbacks arrive from multiple goroutines. Change
// subscribers are invoked synchronously after each mutation, outside the
// lock, so a subscriber may read the ledger back.
type Ledger struct {
	mu      sync.Mutex
	taxRate decimal.Decimal
	cur     currency.Unit

	items []*domain.LineItem
	index map[string]*domain.LineItem

	subs []func()
}

func New(taxRate decimal.Decimal, cur currency.Unit) *Ledger {
	return &Ledger{
		taxRate: taxRate,
		cur:     cur,
		index:   make(map[string]*domain.LineItem),
	}
}

// Subscribe registers a change callback, fired after every mutation.
func (l *Ledger) Subscribe(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subs = append(l.subs, fn)
}

// AddItem merges the product into an existing line item for the same sku,
// or appends a new line item with quantity 1.
func (l *Ledger) AddItem(p domain.Product) {
	l.mu.Lock()

	if item, ok := l.index[p.SKU]; ok {
		item.Quantity++
	} else {
		item := &domain.LineItem{Product: p, Quantity: 1}
		l.items = append(l.items, item)
		l.index[p.SKU] = item
	}

	l.mu.Unlock()
	l.notify()
}

// RemoveItem drops the line item for the sku entirely. It reports whether
// anything was removed; removing an absent sku is a silent no-op.
func (l *Ledger) RemoveItem(sku string) bool {
	l.mu.Lock()

	_, ok := l.index[sku]
	if ok {
		delete(l.index, sku)
		for i, item := range l.items {
			if item.Product.SKU == sku {
				l.items = append(l.items[:i], l.items[i+1:]...)
				break
			}
		}
	}

	l.mu.Unlock()

	if ok {
		l.notify()
	}
	return ok
}

// SetQuantity replaces the quantity of an existing line item. Quantities
// below 1 are rejected; use RemoveItem to drop a line.
func (l *Ledger) SetQuantity(sku string, n int) error {
	if n < 1 {
		return fmt.Errorf("quantity %d: %w", n, ErrInvalidQuantity)
	}

	l.mu.Lock()

	item, ok := l.index[sku]
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("sku %s: %w", sku, ErrItemNotFound)
	}
	item.Quantity = n

	l.mu.Unlock()
	l.notify()
	return nil
}

// Clear removes all line items. Clearing an empty ledger is a no-op that
// still notifies subscribers.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.reset()
	l.mu.Unlock()

	l.notify()
}

// Drain copies the current line items and clears the ledger in one
// critical section, so no add can slip in between snapshot and clear.
func (l *Ledger) Drain() []domain.LineItem {
	l.mu.Lock()
	items := l.copyItems()
	l.reset()
	l.mu.Unlock()

	l.notify()
	return items
}

// LineItems returns ordered value copies of the current line items.
// Mutating the returned slice does not affect the ledger.
func (l *Ledger) LineItems() []domain.LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.copyItems()
}

func (l *Ledger) Subtotal() domain.Money {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.subtotal()
}

func (l *Ledger) Tax() domain.Money {
	l.mu.Lock()
	defer l.mu.Unlock()

	return domain.Money{
		Amount:   l.subtotal().Amount.Mul(l.taxRate),
		Currency: l.cur,
	}
}

func (l *Ledger) Total() domain.Money {
	l.mu.Lock()
	defer l.mu.Unlock()

	sub := l.subtotal()
	return domain.Money{
		Amount:   sub.Amount.Add(sub.Amount.Mul(l.taxRate)),
		Currency: l.cur,
	}
}

func (l *Ledger) TaxRate() decimal.Decimal {
	return l.taxRate
}

func (l *Ledger) Currency() currency.Unit {
	return l.cur
}

func (l *Ledger) subtotal() domain.Money {
	sum := decimal.Zero
	for _, item := range l.items {
		sum = sum.Add(item.LineTotal().Amount)
	}

	return domain.Money{Amount: sum, Currency: l.cur}
}

func (l *Ledger) copyItems() []domain.LineItem {
	items := make([]domain.LineItem, 0, len(l.items))
	for _, item := range l.items {
		items = append(items, *item)
	}
	return items
}

func (l *Ledger) reset() {
	l.items = nil
	l.index = make(map[string]*domain.LineItem)
}

func (l *Ledger) notify() {
	l.mu.Lock()
	subs := make([]func(), len(l.subs))
	copy(subs, l.subs)
	l.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
