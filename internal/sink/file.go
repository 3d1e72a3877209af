package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quicktill/quicktill/internal/port"
	"github.com/sirupsen/logrus"
)

// FileSink persists rendered documents under a base directory. Failures
// come back as *port.SinkError and are safe to retry.
type FileSink struct {
	dir string
	log *logrus.Logger
}

func NewFile(dir string, log *logrus.Logger) *FileSink {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &FileSink{dir: dir, log: log}
}

func (s *FileSink) Deliver(ctx context.Context, document []byte, filename string) error {
	if filename == "" {
		return &port.SinkError{Filename: filename, Err: fmt.Errorf("filename is empty")}
	}
	if err := ctx.Err(); err != nil {
		return &port.SinkError{Filename: filename, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &port.SinkError{Filename: filename, Err: fmt.Errorf("os.MkdirAll: %w", err)}
	}

	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return &port.SinkError{Filename: filename, Err: fmt.Errorf("os.WriteFile: %w", err)}
	}

	s.log.WithFields(logrus.Fields{
		"path": path,
		"size": len(document),
	}).Debug("document written")

	return nil
}

var _ port.DocumentSink = (*FileSink)(nil)
