package sink_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quicktill/quicktill/internal/port"
	"github.com/quicktill/quicktill/internal/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkDeliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "invoices")
	s := sink.NewFile(dir, nil)

	document := []byte("TAX INVOICE\n")
	require.NoError(t, s.Deliver(t.Context(), document, "invoice-1.txt"))

	written, err := os.ReadFile(filepath.Join(dir, "invoice-1.txt"))
	require.NoError(t, err)
	assert.Equal(t, document, written)
}

func TestFileSinkEmptyFilename(t *testing.T) {
	s := sink.NewFile(t.TempDir(), nil)

	err := s.Deliver(t.Context(), []byte("x"), "")

	var sinkErr *port.SinkError
	require.ErrorAs(t, err, &sinkErr)
}

func TestFileSinkCanceledContext(t *testing.T) {
	dir := t.TempDir()
	s := sink.NewFile(dir, nil)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := s.Deliver(ctx, []byte("x"), "invoice-1.txt")

	var sinkErr *port.SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(filepath.Join(dir, "invoice-1.txt"))
	assert.True(t, os.IsNotExist(statErr), "nothing written after cancellation")
}

func TestWriterSinkDeliver(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewWriter(&buf)

	document := []byte("TAX INVOICE\n")
	require.NoError(t, s.Deliver(t.Context(), document, "invoice-1.txt"))
	assert.Equal(t, document, buf.Bytes())
}

func TestWriterSinkWriteFailure(t *testing.T) {
	s := sink.NewWriter(failingWriter{})

	err := s.Deliver(t.Context(), []byte("x"), "invoice-1.txt")

	var sinkErr *port.SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "invoice-1.txt", sinkErr.Filename)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("no share target available")
}
