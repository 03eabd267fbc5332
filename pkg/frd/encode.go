package frd

import (
	"encoding/binary"
	"fmt"

	"github.com/bft-labs/frdsource/pkg/checksum"
)

// Event describes an event record to encode.
type Event struct {
	Version uint16
	Flags   uint16
	Run     uint32
	Lumi    uint32
	Event   uint64
	Payload []byte
	Padding uint32

	// FEDSizes splits a v2 payload across FEDs. When nil the whole payload is
	// attributed to FED 0. The sizes must add up to len(Payload).
	FEDSizes []uint32

	// Checksum overrides the computed Adler-32 or CRC32C when non-nil.
	Checksum *uint32
}

// AppendEvent appends the encoding of e to dst, computing the checksum the
// version carries over the payload.
func AppendEvent(dst []byte, e Event) ([]byte, error) {
	size, err := EventHeaderSize(e.Version)
	if err != nil {
		return dst, err
	}
	if e.Padding != 0 && (e.Version < 3 || e.Version >= 5) {
		return dst, fmt.Errorf("frd: v%d records carry no padding", e.Version)
	}

	h := make([]byte, size)
	le := binary.LittleEndian
	le.PutUint16(h[0:2], e.Version)
	if e.Version >= 6 {
		le.PutUint16(h[2:4], e.Flags)
	}
	le.PutUint32(h[4:8], e.Run)
	le.PutUint32(h[8:12], e.Lumi)

	switch e.Version {
	case 2:
		le.PutUint32(h[12:16], uint32(e.Event))
		sizes := e.FEDSizes
		if sizes == nil {
			sizes = []uint32{uint32(len(e.Payload))}
		}
		if len(sizes) > FEDCount {
			return dst, fmt.Errorf("frd: %d FED sizes, at most %d", len(sizes), FEDCount)
		}
		var total uint64
		for i, s := range sizes {
			off := 16 + 4*i
			le.PutUint32(h[off:off+4], s)
			total += uint64(s)
		}
		if total != uint64(len(e.Payload)) {
			return dst, fmt.Errorf("frd: FED sizes add up to %d, payload is %d bytes", total, len(e.Payload))
		}
	case 3:
		le.PutUint32(h[12:16], uint32(e.Event))
		le.PutUint32(h[16:20], uint32(len(e.Payload)))
		le.PutUint32(h[20:24], e.Padding)
		le.PutUint32(h[24:28], e.sum(checksum.Adler32))
	case 4:
		le.PutUint32(h[12:16], uint32(e.Event))
		le.PutUint32(h[16:20], uint32(e.Event>>32))
		le.PutUint32(h[20:24], uint32(len(e.Payload)))
		le.PutUint32(h[24:28], e.Padding)
		le.PutUint32(h[28:32], e.sum(checksum.Adler32))
	default:
		le.PutUint32(h[12:16], uint32(e.Event))
		le.PutUint32(h[16:20], uint32(len(e.Payload)))
		le.PutUint32(h[20:24], e.sum(checksum.CRC32C))
	}

	dst = append(dst, h...)
	dst = append(dst, e.Payload...)
	return append(dst, make([]byte, e.Padding)...), nil
}

func (e Event) sum(f func([]byte) uint32) uint32 {
	if e.Checksum != nil {
		return *e.Checksum
	}
	return f(e.Payload)
}
