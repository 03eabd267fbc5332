package checksum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownVectors(t *testing.T) {
	// RFC 3720 B.4: 32 bytes of zeroes.
	assert.Equal(t, uint32(0x8a9136aa), CRC32C(make([]byte, 32)))
	assert.Equal(t, uint32(0xe3069283), CRC32C([]byte("123456789")))

	assert.Equal(t, uint32(1), Adler32(nil))
	assert.Equal(t, uint32(0x11e60398), Adler32([]byte("Wikipedia")))
}

func TestSelect(t *testing.T) {
	both := DefaultPolicy()
	adlerOnly := Policy{VerifyAdler32: true}
	crcOnly := Policy{VerifyCRC32C: true}

	tests := []struct {
		name    string
		version uint16
		policy  Policy
		want    Algorithm
	}{
		{"v2 has no checksum", 2, both, AlgorithmNone},
		{"v3 adler", 3, both, AlgorithmAdler32},
		{"v4 adler", 4, both, AlgorithmAdler32},
		{"v5 crc", 5, both, AlgorithmCRC32C},
		{"v6 crc", 6, both, AlgorithmCRC32C},
		{"v3 adler only", 3, adlerOnly, AlgorithmAdler32},
		{"v5 adler only falls back to adler", 5, adlerOnly, AlgorithmAdler32},
		{"v6 adler only falls back to adler", 6, adlerOnly, AlgorithmAdler32},
		{"v3 crc only skips", 3, crcOnly, AlgorithmNone},
		{"all disabled", 6, Policy{}, AlgorithmNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.version, tt.policy))
		})
	}
}

func TestVerify(t *testing.T) {
	payload := []byte("0123456789abcdef0123456789abcdef")
	crc := CRC32C(payload)
	adler := Adler32(payload)

	corrupt := append([]byte(nil), payload...)
	corrupt[7] ^= 0x01

	t.Run("matching crc", func(t *testing.T) {
		require.NoError(t, Verify(payload, 5, crc, 0, DefaultPolicy()))
	})

	t.Run("corrupt crc", func(t *testing.T) {
		err := Verify(corrupt, 5, crc, 0, DefaultPolicy())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMismatch))

		var mm *MismatchError
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, AlgorithmCRC32C, mm.Algorithm)
		assert.Equal(t, crc, mm.Expected)
		assert.Equal(t, CRC32C(corrupt), mm.Computed)
	})

	t.Run("corrupt adler", func(t *testing.T) {
		err := Verify(corrupt, 3, 0, adler, Policy{VerifyAdler32: true})
		var mm *MismatchError
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, AlgorithmAdler32, mm.Algorithm)
	})

	t.Run("v5 with only adler enabled", func(t *testing.T) {
		err := Verify(corrupt, 5, crc, 0, Policy{VerifyAdler32: true})
		var mm *MismatchError
		require.True(t, errors.As(err, &mm))
		assert.Equal(t, AlgorithmAdler32, mm.Algorithm)
		assert.Equal(t, uint32(0), mm.Expected)
	})

	t.Run("legacy version skips", func(t *testing.T) {
		require.NoError(t, Verify(corrupt, 2, 0, 0, DefaultPolicy()))
	})

	t.Run("disabled skips", func(t *testing.T) {
		require.NoError(t, Verify(corrupt, 6, crc, 0, Policy{}))
	})
}

func TestMismatchError_Message(t *testing.T) {
	err := &MismatchError{Algorithm: AlgorithmAdler32, Expected: 0x1, Computed: 0xabc}
	assert.Equal(t, "checksum: wrong adler32: expected 0x00000001 but calculated 0x00000abc", err.Error())
}
