// Package fed builds FED raw-data frames in the AMC13 layout.
//
// A frame is a sequence of little-endian 64-bit words:
//
//	word 0        CDF header      (source id, LV1 id, BX id)
//	word 1        AMC13 header    (orbit number, AMC count)
//	word 2        AMC13 header    (copy; slot of the AMC header)
//	word 3..n+2   payload words, verbatim
//	word n+3      AMC13 trailer   (LV1 id, BX id, block number)
//	word n+4      CDF trailer     (event length in words)
//
// The event length in the CDF trailer counts every word of the frame,
// headers and trailers included, so it is always the payload word count
// plus FrameOverheadWords.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package fed
