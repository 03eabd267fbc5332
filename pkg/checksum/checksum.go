package checksum

import (
	"errors"
	"fmt"
	"hash/adler32"
	"hash/crc32"
)

// Event header versions from which each checksum is present.
const (
	MinAdler32Version uint16 = 3
	MinCRC32CVersion  uint16 = 5
)

// ErrMismatch is matched by every *MismatchError.
var ErrMismatch = errors.New("checksum: mismatch")

var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// Algorithm identifies a payload checksum.
type Algorithm int

const (
	AlgorithmNone Algorithm = iota
	AlgorithmCRC32C
	AlgorithmAdler32
)

// String returns the conventional name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmCRC32C:
		return "crc32c"
	case AlgorithmAdler32:
		return "adler32"
	default:
		return "none"
	}
}

// Policy selects which checksums are verified.
type Policy struct {
	VerifyCRC32C  bool
	VerifyAdler32 bool
}

// DefaultPolicy verifies both algorithms.
func DefaultPolicy() Policy {
	return Policy{VerifyCRC32C: true, VerifyAdler32: true}
}

// MismatchError reports a payload whose checksum differs from the one
// carried in its header.
type MismatchError struct {
	Algorithm Algorithm
	Expected  uint32
	Computed  uint32
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum: wrong %s: expected 0x%08x but calculated 0x%08x",
		e.Algorithm, e.Expected, e.Computed)
}

// Is reports whether target is ErrMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// CRC32C returns the Castagnoli CRC of p, seeded with zero.
func CRC32C(p []byte) uint32 {
	return crc32.Checksum(p, crc32cTable)
}

// Adler32 returns the Adler-32 of p starting from the algorithm's initial state.
func Adler32(p []byte) uint32 {
	return adler32.Checksum(p)
}

// Select returns the algorithm that applies to a payload of the given header
// version under policy p. AlgorithmNone means verification is skipped.
func Select(version uint16, p Policy) Algorithm {
	switch {
	case p.VerifyCRC32C && version >= MinCRC32CVersion:
		return AlgorithmCRC32C
	case p.VerifyAdler32 && version >= MinAdler32Version:
		return AlgorithmAdler32
	default:
		return AlgorithmNone
	}
}

// Verify checks payload against the checksum its header carries.
//
// Version 5 and later headers carry only a CRC32C. With CRC verification off
// and Adler-32 on they are still checked with Adler-32 against adler, which
// such headers leave at zero, so they are rejected rather than accepted
// unchecked.
func Verify(payload []byte, version uint16, crc, adler uint32, p Policy) error {
	var expected, computed uint32
	alg := Select(version, p)
	switch alg {
	case AlgorithmCRC32C:
		expected, computed = crc, CRC32C(payload)
	case AlgorithmAdler32:
		expected, computed = adler, Adler32(payload)
	default:
		return nil
	}
	if expected != computed {
		return &MismatchError{Algorithm: alg, Expected: expected, Computed: computed}
	}
	return nil
}
