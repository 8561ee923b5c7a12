package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSymbols_OneBytePerSymbol(t *testing.T) {
	codes := []int{0, 1, 2, 254, 100}

	data, err := EncodeSymbols(codes)
	require.NoError(t, err)

	assert.Len(t, data, len(codes))
	assert.Equal(t, Width1, SymbolWidth(codes))
}

func TestEncodeSymbols_TwoBytesPerSymbol(t *testing.T) {
	// 255 itself already forces the wide encoding.
	codes := []int{0, 255, 1000, 65535}

	data, err := EncodeSymbols(codes)
	require.NoError(t, err)

	assert.Len(t, data, 2*len(codes))
	assert.Equal(t, Width2, SymbolWidth(codes))

	// Little-endian layout.
	assert.Equal(t, []byte{0xe8, 0x03}, data[4:6]) // 1000
}

func TestEncodeSymbols_Empty(t *testing.T) {
	data, err := EncodeSymbols(nil)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, Width1, SymbolWidth(nil))
}

func TestEncodeSymbols_OutOfRange(t *testing.T) {
	_, err := EncodeSymbols([]int{-1})
	assert.Error(t, err)

	_, err = EncodeSymbols([]int{70000})
	assert.Error(t, err)
}

func TestDecodeSymbols_RoundTrip(t *testing.T) {
	for _, codes := range [][]int{
		{0, 1, 2, 3, 254},
		{255, 0, 65535, 42},
		{},
	} {
		data, err := EncodeSymbols(codes)
		require.NoError(t, err)

		decoded, err := DecodeSymbols(data, SymbolWidth(codes))
		require.NoError(t, err)

		if len(codes) == 0 {
			assert.Empty(t, decoded)
		} else {
			assert.Equal(t, codes, decoded)
		}
	}
}

func TestDecodeSymbols_Errors(t *testing.T) {
	_, err := DecodeSymbols([]byte{1, 2, 3}, Width2)
	assert.Error(t, err)

	_, err = DecodeSymbols([]byte{1}, 3)
	assert.Error(t, err)
}
