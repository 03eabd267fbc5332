package frdsource

import (
	"github.com/bft-labs/frdsource/internal/domain"
	"github.com/bft-labs/frdsource/pkg/log"
)

// Re-export types so that embedders need only this package.
type (
	Collection  = domain.Collection
	EventID     = domain.EventID
	FileSummary = domain.FileSummary
	Progress    = domain.Progress
	Position    = domain.Position
)

// Errors returned by Source and Convert; match them with errors.Is.
var (
	ErrEndOfInput            = domain.ErrEndOfInput
	ErrFileOpen              = domain.ErrFileOpen
	ErrStreamMisaligned      = domain.ErrStreamMisaligned
	ErrSourceClosed          = domain.ErrSourceClosed
	ErrInvalidConfig         = domain.ErrInvalidConfig
	ErrEmptyOrUnreadableFile = domain.ErrEmptyOrUnreadableFile
	ErrInvalidFileHeaderSize = domain.ErrInvalidFileHeaderSize
	ErrUnsupportedVersion    = domain.ErrUnsupportedVersion
	ErrTruncatedRecord       = domain.ErrTruncatedRecord
	ErrChecksumMismatch      = domain.ErrChecksumMismatch
)

// Option configures optional behavior of a Source or a conversion.
type Option func(*options)

type options struct {
	logger       log.Logger
	eventHandler EventHandler
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = log.OrNoop(logger)
	}
}

// WithEventHandler sets a handler for state changes and completed files.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}
