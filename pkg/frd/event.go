package frd

import (
	"encoding/binary"
	"fmt"
)

// Supported event header versions.
const (
	MinEventVersion uint16 = 2
	MaxEventVersion uint16 = 6
)

// FEDCount is the number of FED size words in a v2 event header.
const FEDCount = 1024

// MaxRecordSize bounds the total size a header may declare.
const MaxRecordSize = 1 << 30

// VersionTagSize is the size of the version and flags words that open every
// event header.
const VersionTagSize = 4

var eventHeaderSizes = [MaxEventVersion + 1]int{
	0,
	0,
	(4 + FEDCount) * 4,
	7 * 4,
	8 * 4,
	6 * 4,
	6 * 4,
}

// EventHeaderSize returns the fixed header size for an event header version.
func EventHeaderSize(version uint16) (int, error) {
	if version < MinEventVersion || version > MaxEventVersion {
		return 0, fmt.Errorf("%w: %d (supported %d..%d)", ErrUnsupportedHeaderVersion, version, MinEventVersion, MaxEventVersion)
	}
	return eventHeaderSizes[version], nil
}

// EventVersion reads the version tag from the first two bytes of b.
func EventVersion(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b[0:2])
}

// EventView is a read-only view over one event record held in a caller-owned
// buffer. It does not copy; the view is invalid once the buffer is reused or
// reallocated.
type EventView struct {
	buf         []byte
	version     uint16
	flags       uint16
	headerSize  int
	run         uint32
	lumi        uint32
	event       uint64
	eventSize   uint32
	paddingSize uint32
	adler32     uint32
	crc32c      uint32
}

// NewEventView parses the fixed event header at the start of b. b must hold at
// least the fixed header; the payload may still be missing, see Complete.
func NewEventView(b []byte) (EventView, error) {
	v := EventView{buf: b, version: EventVersion(b)}
	size, err := EventHeaderSize(v.version)
	if err != nil {
		return EventView{}, err
	}
	if len(b) < size {
		return EventView{}, fmt.Errorf("%w: header v%d needs %d bytes, got %d", ErrTruncatedRecord, v.version, size, len(b))
	}
	v.headerSize = size

	le := binary.LittleEndian
	if v.version >= 6 {
		v.flags = le.Uint16(b[2:4])
	}
	v.run = le.Uint32(b[4:8])
	v.lumi = le.Uint32(b[8:12])

	switch v.version {
	case 2:
		v.event = uint64(le.Uint32(b[12:16]))
		var total uint64
		for i := 0; i < FEDCount; i++ {
			off := 16 + 4*i
			total += uint64(le.Uint32(b[off : off+4]))
		}
		if total > MaxRecordSize {
			return EventView{}, fmt.Errorf("%w: payload %d bytes", ErrRecordTooLarge, total)
		}
		v.eventSize = uint32(total)
	case 3:
		v.event = uint64(le.Uint32(b[12:16]))
		v.eventSize = le.Uint32(b[16:20])
		v.paddingSize = le.Uint32(b[20:24])
		v.adler32 = le.Uint32(b[24:28])
	case 4:
		v.event = uint64(le.Uint32(b[12:16])) | uint64(le.Uint32(b[16:20]))<<32
		v.eventSize = le.Uint32(b[20:24])
		v.paddingSize = le.Uint32(b[24:28])
		v.adler32 = le.Uint32(b[28:32])
	default:
		v.event = uint64(le.Uint32(b[12:16]))
		v.eventSize = le.Uint32(b[16:20])
		v.crc32c = le.Uint32(b[20:24])
	}

	if v.TotalSize() > MaxRecordSize {
		return EventView{}, fmt.Errorf("%w: %d bytes", ErrRecordTooLarge, v.TotalSize())
	}
	return v, nil
}

// Version returns the event header version.
func (v EventView) Version() uint16 { return v.version }

// Flags returns the header flags. Only version 6 carries flags.
func (v EventView) Flags() uint16 { return v.flags }

// HeaderSize returns the fixed header size for this record's version.
func (v EventView) HeaderSize() int { return v.headerSize }

// Run returns the run number.
func (v EventView) Run() uint32 { return v.run }

// Lumi returns the luminosity section.
func (v EventView) Lumi() uint32 { return v.lumi }

// Event returns the event number.
func (v EventView) Event() uint64 { return v.event }

// EventSize returns the payload size in bytes.
func (v EventView) EventSize() uint32 { return v.eventSize }

// PaddingSize returns the number of padding bytes after the payload (v3, v4).
func (v EventView) PaddingSize() uint32 { return v.paddingSize }

// Adler32 returns the payload Adler-32 carried by v3 and v4 headers.
func (v EventView) Adler32() uint32 { return v.adler32 }

// CRC32C returns the payload CRC32C carried by v5 and later headers.
func (v EventView) CRC32C() uint32 { return v.crc32c }

// TotalSize returns header, payload and padding size in bytes.
func (v EventView) TotalSize() uint64 {
	return uint64(v.headerSize) + uint64(v.eventSize) + uint64(v.paddingSize)
}

// Complete reports whether the underlying buffer holds the whole record.
func (v EventView) Complete() bool {
	return uint64(len(v.buf)) >= v.TotalSize()
}

// FEDSizes returns the per-FED payload sizes of a v2 header, nil otherwise.
func (v EventView) FEDSizes() []uint32 {
	if v.version != 2 {
		return nil
	}
	sizes := make([]uint32, FEDCount)
	for i := range sizes {
		off := 16 + 4*i
		sizes[i] = binary.LittleEndian.Uint32(v.buf[off : off+4])
	}
	return sizes
}

// Payload returns the payload bytes, or nil if the record is incomplete.
func (v EventView) Payload() []byte {
	if !v.Complete() {
		return nil
	}
	end := v.headerSize + int(v.eventSize)
	return v.buf[v.headerSize:end:end]
}

// Bytes returns the whole record, header included, or nil if incomplete.
func (v EventView) Bytes() []byte {
	if !v.Complete() {
		return nil
	}
	end := int(v.TotalSize())
	return v.buf[:end:end]
}

func (v EventView) String() string {
	return fmt.Sprintf("frd v%d run=%d lumi=%d event=%d size=%d", v.version, v.run, v.lumi, v.event, v.eventSize)
}
