package ports

import (
	"context"

	"github.com/bft-labs/frdsource/internal/domain"
)

// FrameSink consumes the frame collection of each event.
type FrameSink interface {
	// Write takes ownership of c.
	Write(ctx context.Context, c *domain.Collection) error

	// Close flushes buffered output.
	Close() error
}
