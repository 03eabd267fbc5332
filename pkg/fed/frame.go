package fed

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// WordSize is the width of a frame word in bytes.
const WordSize = 8

// FrameOverheadWords is the number of framing words around the payload:
// CDF header, AMC13 header, AMC header slot, AMC13 trailer and CDF trailer.
const FrameOverheadWords = 5

var (
	ErrShortFrame     = errors.New("fed: frame shorter than its framing words")
	ErrUnalignedFrame = errors.New("fed: frame length is not a multiple of the word size")
	ErrLengthMismatch = errors.New("fed: trailer length does not match frame")
	ErrMissingMarker  = errors.New("fed: CDF marker missing")
)

// PayloadWords returns the number of 64-bit words needed to hold n payload
// bytes. A trailing partial word is zero-padded by Encode.
func PayloadWords(n int) int {
	return (n + WordSize - 1) / WordSize
}

// FrameSize returns the size in bytes of a frame carrying the given number of
// payload words.
func FrameSize(payloadWords int) int {
	return (payloadWords + FrameOverheadWords) * WordSize
}

// Header returns the four framing words of an event: CDF header, AMC13
// header, AMC13 trailer and CDF trailer.
func Header(event uint64, sourceID uint16, payloadWords int) (cdfh, amc13h, amc13t, cdft uint64) {
	cdfh = CDFHeader{EventType: 0, LV1ID: uint32(event), BXID: 0, SourceID: sourceID}.Word()
	amc13h = AMC13Header{CalType: 0, NAMC: 1, OrbitN: uint32(event)}.Word()
	amc13t = AMC13Trailer{BlockN: 0, LV1ID: uint8(event), BXID: 0}.Word()
	cdft = CDFTrailer{EvtLength: uint32(payloadWords + FrameOverheadWords)}.Word()
	return cdfh, amc13h, amc13t, cdft
}

// Encode builds the frame words for payload. payloadWords words are taken
// from payload; bytes missing at the end are read as zero. event fills the
// LV1 id and orbit number, sourceID the CDF source id.
func Encode(payload []byte, payloadWords int, event uint64, sourceID uint16) []uint64 {
	if payloadWords < 0 {
		payloadWords = 0
	}
	n := payloadWords + FrameOverheadWords
	words := make([]uint64, n)

	cdfh, amc13h, amc13t, cdft := Header(event, sourceID, payloadWords)
	words[0] = cdfh
	words[1] = amc13h
	// The AMC header slot repeats the AMC13 header.
	words[2] = amc13h

	var last [WordSize]byte
	for i := 0; i < payloadWords; i++ {
		off := i * WordSize
		switch {
		case off+WordSize <= len(payload):
			words[3+i] = binary.LittleEndian.Uint64(payload[off : off+WordSize])
		case off < len(payload):
			copy(last[:], payload[off:])
			words[3+i] = binary.LittleEndian.Uint64(last[:])
		}
	}

	words[n-2] = amc13t
	words[n-1] = cdft
	return words
}

// AppendWords appends words to dst as little-endian bytes.
func AppendWords(dst []byte, words []uint64) []byte {
	for _, w := range words {
		dst = binary.LittleEndian.AppendUint64(dst, w)
	}
	return dst
}

// EncodeBytes is Encode followed by AppendWords into a new slice of exactly
// FrameSize(PayloadWords(len(payload))) bytes.
func EncodeBytes(payload []byte, event uint64, sourceID uint16) []byte {
	w := PayloadWords(len(payload))
	return AppendWords(make([]byte, 0, FrameSize(w)), Encode(payload, w, event, sourceID))
}

// Frame is a parsed FED frame.
type Frame struct {
	Header       CDFHeader
	AMC13        AMC13Header
	AMCSlot      uint64
	Payload      []byte
	AMC13Trailer AMC13Trailer
	Trailer      CDFTrailer
}

// Parse splits b into framing words and payload, checks the CDF markers and
// checks the trailer's length field against len(b). Payload aliases b.
func Parse(b []byte) (Frame, error) {
	if len(b)%WordSize != 0 {
		return Frame{}, fmt.Errorf("%w: %d bytes", ErrUnalignedFrame, len(b))
	}
	n := len(b) / WordSize
	if n < FrameOverheadWords {
		return Frame{}, fmt.Errorf("%w: %d words", ErrShortFrame, n)
	}
	word := func(i int) uint64 { return binary.LittleEndian.Uint64(b[i*WordSize : (i+1)*WordSize]) }

	if !HasCDFHeaderMarker(word(0)) {
		return Frame{}, fmt.Errorf("%w: header word 0x%016x", ErrMissingMarker, word(0))
	}
	if !HasCDFTrailerMarker(word(n - 1)) {
		return Frame{}, fmt.Errorf("%w: trailer word 0x%016x", ErrMissingMarker, word(n-1))
	}
	f := Frame{
		Header:       ParseCDFHeader(word(0)),
		AMC13:        ParseAMC13Header(word(1)),
		AMCSlot:      word(2),
		Payload:      b[3*WordSize : (n-2)*WordSize],
		AMC13Trailer: ParseAMC13Trailer(word(n - 2)),
		Trailer:      ParseCDFTrailer(word(n - 1)),
	}
	if int(f.Trailer.EvtLength) != n {
		return f, fmt.Errorf("%w: trailer says %d words, frame has %d", ErrLengthMismatch, f.Trailer.EvtLength, n)
	}
	return f, nil
}
