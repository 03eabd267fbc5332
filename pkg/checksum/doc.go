// Package checksum verifies FRD event payloads.
//
// Two algorithms are in use depending on the event header version:
//
//   - version 5 and later carry a CRC32C (Castagnoli) of the payload
//   - versions 3 and 4 carry an Adler-32 of the payload
//
// Older versions carry no checksum and are accepted without verification.
//
// # Usage
//
//	policy := checksum.Policy{VerifyCRC32C: true, VerifyAdler32: true}
//	if err := checksum.Verify(payload, version, crc, adler, policy); err != nil {
//	    var mm *checksum.MismatchError
//	    if errors.As(err, &mm) {
//	        // mm.Expected, mm.Computed
//	    }
//	    return err
//	}
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package checksum
