package compresslen

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allBackends = []Backend{BackendLZMA, BackendDeflate, BackendZstd, BackendLZ4}

func TestParseBackend(t *testing.T) {
	for _, b := range allBackends {
		parsed, err := ParseBackend(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}

	_, err := ParseBackend("brotli")
	assert.Error(t, err)
}

func TestCompressedLen_UnknownBackend(t *testing.T) {
	_, err := CompressedLen(Backend(99), []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestCompressedLen_EmptyInput(t *testing.T) {
	for _, b := range allBackends {
		n, err := CompressedLen(b, nil)
		require.NoError(t, err, b.String())

		// Format-specific minimum overhead, a handful of bytes at most.
		assert.GreaterOrEqual(t, n, 0, b.String())
		assert.Less(t, n, 32, b.String())
	}
}

func TestCompressedLen_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := make([]byte, 4096)
	rng.Read(data)

	for _, b := range allBackends {
		n1, err := CompressedLen(b, data)
		require.NoError(t, err)

		n2, err := CompressedLen(b, data)
		require.NoError(t, err)

		assert.Equal(t, n1, n2, b.String())
	}
}

func TestCompressedLen_RepetitiveInput(t *testing.T) {
	const size = 1 << 16
	data := bytes.Repeat([]byte{42}, size)

	for _, b := range allBackends {
		n, err := CompressedLen(b, data)
		require.NoError(t, err, b.String())

		// Highly repetitive input must compress far below its length.
		assert.Less(t, n, size/16, b.String())
	}
}

func TestCompressedLen_RepetitiveGrowsSublinearly(t *testing.T) {
	for _, b := range allBackends {
		small, err := CompressedLen(b, bytes.Repeat([]byte{7}, 1<<12))
		require.NoError(t, err)

		large, err := CompressedLen(b, bytes.Repeat([]byte{7}, 1<<16))
		require.NoError(t, err)

		// 16x more input, clearly less than 16x more output, and both
		// far below their input sizes.
		assert.Less(t, large, small*16, b.String())
		assert.Less(t, large, 1<<12, b.String())
	}
}

func TestCompressedLen_RandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 1<<14)
	rng.Read(data)

	for _, b := range allBackends {
		n, err := CompressedLen(b, data)
		require.NoError(t, err, b.String())

		// Uniform random bytes are incompressible: no dramatic shrinkage.
		assert.Greater(t, n, len(data)*9/10, b.String())
	}
}

func TestNormalizedLen_ConstantSequenceGrowsWithLength(t *testing.T) {
	for _, b := range []Backend{BackendLZMA, BackendDeflate, BackendZstd} {
		var prev float64
		for _, size := range []int{1 << 10, 1 << 12, 1 << 14} {
			codes := make([]int, size)

			ratio, err := NormalizedLen(b, codes)
			require.NoError(t, err, b.String())

			assert.Greater(t, ratio, prev, "backend %s size %d", b, size)
			prev = ratio
		}
	}
}

func TestNormalizedLen_RandomSequenceNearOne(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	codes := make([]int, 1<<14)
	for i := range codes {
		codes[i] = rng.Intn(255) // one byte per symbol
	}

	for _, b := range []Backend{BackendLZMA, BackendDeflate, BackendZstd} {
		ratio, err := NormalizedLen(b, codes)
		require.NoError(t, err, b.String())

		assert.InDelta(t, 1.0, ratio, 0.15, b.String())
	}
}

func TestNormalizedLen_EmptyIsDegenerate(t *testing.T) {
	_, err := NormalizedLen(BackendDeflate, nil)
	assert.ErrorIs(t, err, ErrDegenerateBaseline)
}
