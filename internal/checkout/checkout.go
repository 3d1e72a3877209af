package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quicktill/quicktill/internal/domain"
	"github.com/quicktill/quicktill/internal/ledger"
	"github.com/quicktill/quicktill/internal/port"
	"github.com/sirupsen/logrus"
)

// Service finalizes sales and hands the rendered invoice to the document
// sink. Finalizing commits the sale: delivery runs strictly afterwards
// and its failure never rolls the sale back or touches the ledger.
type Service struct {
	ledger   *ledger.Ledger
	renderer port.InvoiceRenderer
	sink     port.DocumentSink
	log      *logrus.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

func New(l *ledger.Ledger, renderer port.InvoiceRenderer, sink port.DocumentSink, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Service{
		ledger:   l,
		renderer: renderer,
		sink:     sink,
		log:      log,
		now:      time.Now,
		newID:    uuid.New,
	}
}

// Finalize snapshots the ledger's line items into an immutable sale and
// clears the ledger. The copy and the clear happen in one critical
// section, so the snapshot reflects exactly the pre-finalize state.
// An empty ledger yields an empty sale, not an error.
func (s *Service) Finalize() domain.Sale {
	rate := s.ledger.TaxRate()
	cur := s.ledger.Currency()

	items := s.ledger.Drain()

	sold := make([]domain.SoldItem, 0, len(items))
	subtotal := domain.Money{Currency: cur}
	for _, item := range items {
		lineTotal := item.LineTotal()
		sold = append(sold, domain.SoldItem{
			SKU:         item.Product.SKU,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	tax := domain.Money{Amount: subtotal.Amount.Mul(rate), Currency: cur}

	sale := domain.Sale{
		ID:        s.newID(),
		Items:     sold,
		TaxRate:   rate,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal.Add(tax),
		CreatedAt: s.now().UTC(),
	}

	s.log.WithFields(logrus.Fields{
		"sale_id": sale.ID,
		"items":   len(sale.Items),
		"total":   sale.Total.Display(),
	}).Info("sale finalized")

	return sale
}

// Checkout finalizes the current cart, renders the invoice and delivers
// it. The returned sale is committed even when rendering or delivery
// fails; a delivery failure can be retried with Redeliver.
func (s *Service) Checkout(ctx context.Context) (domain.Sale, error) {
	sale := s.Finalize()

	if err := s.deliver(ctx, sale); err != nil {
		return sale, err
	}

	return sale, nil
}

// Redeliver re-renders and re-delivers an already finalized sale. It is
// the retry path after a sink failure and never touches the ledger.
func (s *Service) Redeliver(ctx context.Context, sale domain.Sale) error {
	return s.deliver(ctx, sale)
}

func (s *Service) deliver(ctx context.Context, sale domain.Sale) error {
	document, err := s.renderer.Render(sale)
	if err != nil {
		return fmt.Errorf("renderer.Render: %w", err)
	}

	filename := Filename(sale)
	if err := s.sink.Deliver(ctx, document, filename); err != nil {
		s.log.WithError(err).WithField("sale_id", sale.ID).Warn("invoice delivery failed")
		return fmt.Errorf("sink.Deliver: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"sale_id":  sale.ID,
		"filename": filename,
	}).Info("invoice delivered")

	return nil
}

// Filename is the suggested name the sink receives for a sale's invoice.
func Filename(sale domain.Sale) string {
	return fmt.Sprintf("invoice-%s.txt", sale.ID)
}
