package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/quicktill/quicktill/internal/port"
)

// WriterSink streams documents to an io.Writer instead of naming a file,
// the print/preview flavor of delivery. Both outcomes count as delivered.
type WriterSink struct {
	w io.Writer
}

func NewWriter(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Deliver(ctx context.Context, document []byte, filename string) error {
	if err := ctx.Err(); err != nil {
		return &port.SinkError{Filename: filename, Err: err}
	}

	if _, err := s.w.Write(document); err != nil {
		return &port.SinkError{Filename: filename, Err: fmt.Errorf("w.Write: %w", err)}
	}

	return nil
}

var _ port.DocumentSink = (*WriterSink)(nil)
