package frd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHeaderVersion(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint16
	}{
		{"v1", []byte("RAW_0001"), 1},
		{"v2", []byte("RAW_0002"), 2},
		{"v12", []byte("RAW_0012"), 12},
		{"wrong id", []byte("RAW-0001"), 0},
		{"not a number", []byte("RAW_00x1"), 0},
		{"short", []byte("RAW_"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileHeaderVersion(tt.in))
		})
	}
}

func TestDecodeFileHeader_V1(t *testing.T) {
	b := AppendFileHeader(nil, FileHeader{Version: 1, EventCount: 7, Lumi: 42, FileSize: 1 << 20})
	require.Len(t, b, FileHeaderSize)

	h, ok, err := DecodeFileHeader(b)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, FileHeader{Version: 1, HeaderSize: FileHeaderSize, EventCount: 7, Lumi: 42, FileSize: 1 << 20}, h)
}

func TestDecodeFileHeader_V2(t *testing.T) {
	in := FileHeader{Version: 2, DataType: 3, EventCount: 100000, Lumi: 5, SourceID: 1477, FileSize: 4096}
	b := AppendFileHeader(nil, in)
	require.Len(t, b, FileHeaderV2Size)

	t.Run("probe layout only", func(t *testing.T) {
		h, ok, err := DecodeFileHeader(b[:FileHeaderSize])
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, uint16(FileHeaderV2Size), h.HeaderSize)
		assert.Equal(t, uint32(1477), h.SourceID)
		assert.Zero(t, h.FileSize)
	})

	t.Run("full layout", func(t *testing.T) {
		h, ok, err := DecodeFileHeader(b)
		require.NoError(t, err)
		require.True(t, ok)
		in.HeaderSize = FileHeaderV2Size
		assert.Equal(t, in, h)
	})
}

func TestDecodeFileHeader_NotAHeader(t *testing.T) {
	b, err := AppendEvent(nil, Event{Version: 5, Run: 1, Payload: make([]byte, 8)})
	require.NoError(t, err)

	_, ok, err := DecodeFileHeader(b[:FileHeaderSize])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeFileHeader_SizeTooSmall(t *testing.T) {
	b := AppendFileHeader(nil, FileHeader{Version: 1, HeaderSize: 16})

	_, ok, err := DecodeFileHeader(b)
	assert.True(t, ok)
	assert.True(t, errors.Is(err, ErrInvalidFileHeaderSize))
}

func TestDecodeFileHeader_Short(t *testing.T) {
	_, _, err := DecodeFileHeader([]byte("RAW_0001"))
	assert.Error(t, err)
}

func TestAppendFileHeader_Oversized(t *testing.T) {
	b := AppendFileHeader(nil, FileHeader{Version: 1, HeaderSize: 64})
	require.Len(t, b, 64)

	h, ok, err := DecodeFileHeader(b)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint16(64), h.HeaderSize)
}
