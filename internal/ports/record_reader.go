package ports

import (
	"context"

	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/pkg/frd"
)

// RecordReader reads event records from one physical input stream.
type RecordReader interface {
	// Open prepares the first file of the stream. A file that cannot be
	// opened is not reported here; the failure surfaces from the first Next.
	Open(ctx context.Context) error

	// Next returns the next verified record. The returned view is valid until
	// the following call to Next. Returns domain.ErrEndOfInput when every file
	// has been consumed.
	Next(ctx context.Context) (frd.EventView, error)

	// Position returns the current read position.
	Position() domain.Position

	// Close releases the open file, if any.
	Close() error
}
