package port

import (
	"context"
	"fmt"

	"github.com/quicktill/quicktill/internal/domain"
)

// Catalog is the read-only product source, loaded once before first use.
type Catalog interface {
	List() []domain.Product
	Get(sku string) (domain.Product, error)
}

// InvoiceRenderer turns a finalized sale into a rendered document.
// Implementations must be pure: identical input, identical bytes.
type InvoiceRenderer interface {
	Render(sale domain.Sale) ([]byte, error)
}

// DocumentSink delivers a rendered document to platform storage, a share
// target or a print/preview surface. All outcomes count as delivered.
type DocumentSink interface {
	Deliver(ctx context.Context, document []byte, filename string) error
}

// SinkError reports a failed delivery. It is recoverable: the sale behind
// the document stays finalized and the delivery may be retried.
type SinkError struct {
	Filename string
	Err      error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("deliver %s: %v", e.Filename, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}
