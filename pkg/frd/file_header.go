package frd

import (
	"encoding/binary"
	"fmt"
)

// File header layout sizes. FileHeaderSize is the largest layout probed at
// the start of every file; later versions declare a larger HeaderSize and the
// reader skips forward to it.
const (
	FileHeaderSize   = 24
	FileHeaderV2Size = 32
)

// FileHeaderID is the magic that opens an FRD file header.
var FileHeaderID = [4]byte{'R', 'A', 'W', '_'}

// FileHeader is the optional header at the start of an FRD file.
type FileHeader struct {
	Version    uint16
	HeaderSize uint16
	DataType   uint16 // v2 only
	EventCount uint32
	Lumi       uint32
	SourceID   uint32 // v2 only
	FileSize   uint64 // v1, or v2 when the full v2 layout is available
}

// FileHeaderVersion returns the version encoded in the first eight bytes of b,
// or 0 if b does not start with an FRD file header identifier. The version is
// four ASCII digits following the identifier.
func FileHeaderVersion(b []byte) uint16 {
	if len(b) < 8 {
		return 0
	}
	for i := range FileHeaderID {
		if b[i] != FileHeaderID[i] {
			return 0
		}
	}
	var v uint16
	for _, c := range b[4:8] {
		if c < '0' || c > '9' {
			return 0
		}
		v = v*10 + uint16(c-'0')
	}
	return v
}

// DecodeFileHeader parses a file header from b, which must hold at least
// FileHeaderSize bytes. It returns ok=false when b does not begin with a
// recognised file header, in which case the bytes belong to the first event.
func DecodeFileHeader(b []byte) (h FileHeader, ok bool, err error) {
	if len(b) < FileHeaderSize {
		return FileHeader{}, false, fmt.Errorf("frd: file header needs %d bytes, got %d", FileHeaderSize, len(b))
	}
	h.Version = FileHeaderVersion(b)
	if h.Version == 0 {
		return FileHeader{}, false, nil
	}
	h.HeaderSize = binary.LittleEndian.Uint16(b[8:10])
	if int(h.HeaderSize) < FileHeaderSize {
		return h, true, fmt.Errorf("%w: declared %d, layout is %d bytes", ErrInvalidFileHeaderSize, h.HeaderSize, FileHeaderSize)
	}

	switch h.Version {
	case 1:
		h.EventCount = uint32(binary.LittleEndian.Uint16(b[10:12]))
		h.Lumi = binary.LittleEndian.Uint32(b[12:16])
		h.FileSize = binary.LittleEndian.Uint64(b[16:24])
	default:
		h.DataType = binary.LittleEndian.Uint16(b[10:12])
		h.EventCount = binary.LittleEndian.Uint32(b[12:16])
		h.Lumi = binary.LittleEndian.Uint32(b[16:20])
		h.SourceID = binary.LittleEndian.Uint32(b[20:24])
		if len(b) >= FileHeaderV2Size && int(h.HeaderSize) >= FileHeaderV2Size {
			h.FileSize = binary.LittleEndian.Uint64(b[24:32])
		}
	}
	return h, true, nil
}

// AppendFileHeader appends the encoding of h to dst. Versions other than 1
// use the v2 layout. HeaderSize defaults to the layout size when zero; any
// bytes beyond the layout are zero-filled.
func AppendFileHeader(dst []byte, h FileHeader) []byte {
	if h.Version == 0 {
		h.Version = 1
	}
	layout := FileHeaderSize
	if h.Version != 1 {
		layout = FileHeaderV2Size
	}
	if h.HeaderSize == 0 {
		h.HeaderSize = uint16(layout)
	}
	size := int(h.HeaderSize)
	if size < layout {
		size = layout
	}

	b := make([]byte, size)
	copy(b[0:4], FileHeaderID[:])
	copy(b[4:8], fmt.Sprintf("%04d", h.Version%10000))
	binary.LittleEndian.PutUint16(b[8:10], h.HeaderSize)
	if h.Version == 1 {
		binary.LittleEndian.PutUint16(b[10:12], uint16(h.EventCount))
		binary.LittleEndian.PutUint32(b[12:16], h.Lumi)
		binary.LittleEndian.PutUint64(b[16:24], h.FileSize)
	} else {
		binary.LittleEndian.PutUint16(b[10:12], h.DataType)
		binary.LittleEndian.PutUint32(b[12:16], h.EventCount)
		binary.LittleEndian.PutUint32(b[16:20], h.Lumi)
		binary.LittleEndian.PutUint32(b[20:24], h.SourceID)
		binary.LittleEndian.PutUint64(b[24:32], h.FileSize)
	}
	return append(dst, b...)
}
