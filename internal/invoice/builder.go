package invoice

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/quicktill/quicktill/internal/domain"
	"github.com/quicktill/quicktill/internal/port"
	"github.com/shopspring/decimal"
)

var percent = decimal.NewFromInt(100)

// ErrInvalidSnapshot marks a sale whose items violate the ledger
// invariants. The builder refuses to render rather than emit a document
// with wrong figures.
var ErrInvalidSnapshot = errors.New("invalid sale snapshot")

const (
	pageWidth       = 62
	nameColumnWidth = 30
	defaultRowsPage = 20
)

// BusinessInfo is the seller identification block printed on every page.
type BusinessInfo struct {
	Name    string
	Address string
	Phone   string
}

// Builder renders a finalized sale into a fixed-width, paginated plain
// text document. Render is pure: identical sale and builder settings
// produce byte-identical output.
type Builder struct {
	business    BusinessInfo
	rowsPerPage int
}

func NewBuilder(business BusinessInfo, rowsPerPage int) *Builder {
	if rowsPerPage < 1 {
		rowsPerPage = defaultRowsPage
	}

	return &Builder{
		business:    business,
		rowsPerPage: rowsPerPage,
	}
}

func (b *Builder) Render(sale domain.Sale) ([]byte, error) {
	if err := validate(sale); err != nil {
		return nil, err
	}

	pages := (len(sale.Items) + b.rowsPerPage - 1) / b.rowsPerPage
	if pages < 1 {
		pages = 1
	}

	var buf bytes.Buffer
	for page := 0; page < pages; page++ {
		if page > 0 {
			buf.WriteByte('\f')
		}

		first := page * b.rowsPerPage
		last := first + b.rowsPerPage
		if last > len(sale.Items) {
			last = len(sale.Items)
		}

		b.writePage(&buf, sale, sale.Items[first:last], page+1, pages)
	}

	return buf.Bytes(), nil
}

func validate(sale domain.Sale) error {
	for _, item := range sale.Items {
		if item.Quantity < 1 {
			return fmt.Errorf("item %s: quantity %d: %w",
				item.SKU, item.Quantity, ErrInvalidSnapshot)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("item %s: negative unit price: %w",
				item.SKU, ErrInvalidSnapshot)
		}
		if item.LineTotal.IsNegative() {
			return fmt.Errorf("item %s: negative line total: %w",
				item.SKU, ErrInvalidSnapshot)
		}
	}

	return nil
}

func (b *Builder) writePage(buf *bytes.Buffer, sale domain.Sale, items []domain.SoldItem, page, pages int) {
	sep := strings.Repeat("-", pageWidth)

	writeCentered(buf, "TAX INVOICE")
	fmt.Fprintln(buf, sep)

	for _, line := range []string{b.business.Name, b.business.Address, b.business.Phone} {
		if line != "" {
			fmt.Fprintln(buf, line)
		}
	}
	fmt.Fprintln(buf, sep)

	fmt.Fprintf(buf, "Invoice : %s\n", sale.ID)
	fmt.Fprintf(buf, "Date    : %s UTC\n", sale.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(buf, "Page    : %d of %d\n", page, pages)
	fmt.Fprintln(buf, sep)

	fmt.Fprintf(buf, "%-*s %5s %11s %11s\n", nameColumnWidth, "Item", "Qty", "Unit Price", "Amount")
	fmt.Fprintln(buf, sep)

	for _, item := range items {
		fmt.Fprintf(buf, "%-*s %5d %11s %11s\n",
			nameColumnWidth, clip(item.ProductName, nameColumnWidth),
			item.Quantity, item.UnitPrice.Display(), item.LineTotal.Display())
	}

	if page != pages {
		return
	}

	fmt.Fprintln(buf, sep)
	taxLabel := fmt.Sprintf("Tax (%s%%)", sale.TaxRate.Mul(percent).StringFixed(2))
	fmt.Fprintf(buf, "%*s %11s\n", pageWidth-12, "Subtotal", sale.Subtotal.Display())
	fmt.Fprintf(buf, "%*s %11s\n", pageWidth-12, taxLabel, sale.Tax.Display())
	fmt.Fprintf(buf, "%*s %11s\n", pageWidth-12, "Total", sale.Total.Display())
	fmt.Fprintln(buf, sep)
	writeCentered(buf, "Thank you for your purchase!")
}

func writeCentered(buf *bytes.Buffer, text string) {
	pad := (pageWidth - len(text)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(buf, "%s%s\n", strings.Repeat(" ", pad), text)
}

func clip(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width]
}

var _ port.InvoiceRenderer = (*Builder)(nil)
