package fed

// Bit layout of the AMC13 and CDF words.
const (
	cdfSourceIDShift = 8
	cdfSourceIDBits  = 12
	cdfBXShift       = 20
	cdfBXBits        = 12
	cdfLV1Shift      = 32
	cdfLV1Bits       = 24
	cdfEvtTypeShift  = 56
	cdfEvtTypeBits   = 4
	cdfMarkerShift   = 60

	amc13OrbitShift   = 4
	amc13OrbitBits    = 32
	amc13NAMCShift    = 52
	amc13NAMCBits     = 4
	amc13CalTypeShift = 56
	amc13CalTypeBits  = 4

	amc13tBXShift    = 0
	amc13tBXBits     = 12
	amc13tLV1Shift   = 12
	amc13tLV1Bits    = 8
	amc13tBlockShift = 20
	amc13tBlockBits  = 8

	cdftLengthShift = 32
	cdftLengthBits  = 24
	cdftMarkerShift = 60

	markerBits = 4
)

// Fixed nibbles in bits 60..63 of the CDF words. Downstream unpackers check
// them before trusting the rest of the frame.
const (
	CDFHeaderMarker  = 0x5
	CDFTrailerMarker = 0xA
)

// MaxSourceID is the largest FED id the CDF header can carry.
const MaxSourceID = 1<<cdfSourceIDBits - 1

func put(v uint64, shift, bits uint) uint64 {
	return (v & (1<<bits - 1)) << shift
}

func get(w uint64, shift, bits uint) uint64 {
	return (w >> shift) & (1<<bits - 1)
}

// CDFHeader is the first word of a frame.
type CDFHeader struct {
	EventType uint8
	LV1ID     uint32
	BXID      uint16
	SourceID  uint16
}

// Word packs h behind the header marker. Fields wider than their slot are
// truncated.
func (h CDFHeader) Word() uint64 {
	return put(CDFHeaderMarker, cdfMarkerShift, markerBits) |
		put(uint64(h.EventType), cdfEvtTypeShift, cdfEvtTypeBits) |
		put(uint64(h.LV1ID), cdfLV1Shift, cdfLV1Bits) |
		put(uint64(h.BXID), cdfBXShift, cdfBXBits) |
		put(uint64(h.SourceID), cdfSourceIDShift, cdfSourceIDBits)
}

// HasCDFHeaderMarker reports whether w carries the CDF header marker.
func HasCDFHeaderMarker(w uint64) bool {
	return get(w, cdfMarkerShift, markerBits) == CDFHeaderMarker
}

// ParseCDFHeader unpacks a CDF header word. The marker is not checked.
func ParseCDFHeader(w uint64) CDFHeader {
	return CDFHeader{
		EventType: uint8(get(w, cdfEvtTypeShift, cdfEvtTypeBits)),
		LV1ID:     uint32(get(w, cdfLV1Shift, cdfLV1Bits)),
		BXID:      uint16(get(w, cdfBXShift, cdfBXBits)),
		SourceID:  uint16(get(w, cdfSourceIDShift, cdfSourceIDBits)),
	}
}

// AMC13Header follows the CDF header.
type AMC13Header struct {
	CalType uint8
	NAMC    uint8
	OrbitN  uint32
}

// Word packs h.
func (h AMC13Header) Word() uint64 {
	return put(uint64(h.CalType), amc13CalTypeShift, amc13CalTypeBits) |
		put(uint64(h.NAMC), amc13NAMCShift, amc13NAMCBits) |
		put(uint64(h.OrbitN), amc13OrbitShift, amc13OrbitBits)
}

// ParseAMC13Header unpacks an AMC13 header word.
func ParseAMC13Header(w uint64) AMC13Header {
	return AMC13Header{
		CalType: uint8(get(w, amc13CalTypeShift, amc13CalTypeBits)),
		NAMC:    uint8(get(w, amc13NAMCShift, amc13NAMCBits)),
		OrbitN:  uint32(get(w, amc13OrbitShift, amc13OrbitBits)),
	}
}

// AMC13Trailer precedes the CDF trailer.
type AMC13Trailer struct {
	BlockN uint8
	LV1ID  uint8
	BXID   uint16
}

// Word packs t.
func (t AMC13Trailer) Word() uint64 {
	return put(uint64(t.BlockN), amc13tBlockShift, amc13tBlockBits) |
		put(uint64(t.LV1ID), amc13tLV1Shift, amc13tLV1Bits) |
		put(uint64(t.BXID), amc13tBXShift, amc13tBXBits)
}

// ParseAMC13Trailer unpacks an AMC13 trailer word.
func ParseAMC13Trailer(w uint64) AMC13Trailer {
	return AMC13Trailer{
		BlockN: uint8(get(w, amc13tBlockShift, amc13tBlockBits)),
		LV1ID:  uint8(get(w, amc13tLV1Shift, amc13tLV1Bits)),
		BXID:   uint16(get(w, amc13tBXShift, amc13tBXBits)),
	}
}

// CDFTrailer is the last word of a frame.
type CDFTrailer struct {
	EvtLength uint32
}

// Word packs t behind the trailer marker.
func (t CDFTrailer) Word() uint64 {
	return put(CDFTrailerMarker, cdftMarkerShift, markerBits) |
		put(uint64(t.EvtLength), cdftLengthShift, cdftLengthBits)
}

// HasCDFTrailerMarker reports whether w carries the CDF trailer marker.
func HasCDFTrailerMarker(w uint64) bool {
	return get(w, cdftMarkerShift, markerBits) == CDFTrailerMarker
}

// ParseCDFTrailer unpacks a CDF trailer word. The marker is not checked.
func ParseCDFTrailer(w uint64) CDFTrailer {
	return CDFTrailer{EvtLength: uint32(get(w, cdftLengthShift, cdftLengthBits))}
}
