package frd

import "errors"

// Decoding errors. All of them are fatal for the stream they occur in.
var (
	// ErrEmptyOrUnreadableFile is returned when a file yields no bytes at all.
	ErrEmptyOrUnreadableFile = errors.New("frd: empty or unreadable file")

	// ErrInvalidFileHeaderSize is returned when a file header declares a size
	// smaller than the layout that was read.
	ErrInvalidFileHeaderSize = errors.New("frd: invalid file header size")

	// ErrUnsupportedHeaderVersion is returned for event header versions outside
	// the supported range, or when the version changes within a stream.
	ErrUnsupportedHeaderVersion = errors.New("frd: unsupported event header version")

	// ErrTruncatedRecord is returned when fewer bytes are available than a
	// header declares.
	ErrTruncatedRecord = errors.New("frd: truncated record")

	// ErrRecordTooLarge is returned when a header declares a record larger
	// than MaxRecordSize.
	ErrRecordTooLarge = errors.New("frd: record too large")
)
