package domain

import (
	"errors"

	"github.com/bft-labs/frdsource/pkg/checksum"
	"github.com/bft-labs/frdsource/pkg/frd"
)

// ErrEndOfInput signals that the primary stream has no more records. It is
// not a failure; hosts finish normally when they see it.
var ErrEndOfInput = errors.New("frdsource: end of input")

// Fatal stream errors. Format-level errors are defined next to the decoder
// and re-exported here so callers can match everything from one package.
var (
	ErrFileOpen              = errors.New("frdsource: could not open file")
	ErrStreamMisaligned      = errors.New("frdsource: secondary stream ended before primary")
	ErrSourceClosed          = errors.New("frdsource: source is closed")
	ErrInvalidConfig         = errors.New("frdsource: invalid configuration")
	ErrInvalidTransition     = errors.New("frdsource: invalid state transition")
	ErrEmptyOrUnreadableFile = frd.ErrEmptyOrUnreadableFile
	ErrInvalidFileHeaderSize = frd.ErrInvalidFileHeaderSize
	ErrUnsupportedVersion    = frd.ErrUnsupportedHeaderVersion
	ErrTruncatedRecord       = frd.ErrTruncatedRecord
	ErrChecksumMismatch      = checksum.ErrMismatch
)

// IsEndOfInput reports whether err is the end-of-input signal rather than a
// failure.
func IsEndOfInput(err error) bool {
	return errors.Is(err, ErrEndOfInput)
}
