package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB(t *testing.T) {
	assert.InDelta(t, 0, DB(1), 1e-12)
	assert.InDelta(t, 20, DB(10), 1e-12)
	assert.InDelta(t, -20, DB(0.1), 1e-12)
}

func TestBitsForClusters(t *testing.T) {
	assert.InDelta(t, 1, BitsForClusters(2), 1e-12)
	assert.InDelta(t, 8, BitsForClusters(256), 1e-12)
}

func TestExpectedQuantizationNoiseDB(t *testing.T) {
	// 16-bit audio folklore: ~96 dB.
	assert.InDelta(t, 94.56, ExpectedQuantizationNoiseDB(16), 1e-9)
	assert.InDelta(t, 4.26, ExpectedQuantizationNoiseDB(1), 1e-9)
}

func TestByteInformationCeiling(t *testing.T) {
	assert.InDelta(t, 8, ByteInformationCeiling(2), 1e-12)
	assert.InDelta(t, 4, ByteInformationCeiling(4), 1e-12)
	assert.InDelta(t, 1, ByteInformationCeiling(256), 1e-12)
}

func TestRelativeDistortionDB(t *testing.T) {
	out, err := RelativeDistortionDB([]int{2, 4}, []float64{1, 1})
	require.NoError(t, err)

	assert.InDelta(t, 6.02-1.76, out[0], 1e-9)
	assert.InDelta(t, 12.04-1.76, out[1], 1e-9)

	_, err = RelativeDistortionDB([]int{2}, []float64{1, 2})
	assert.Error(t, err)
}

func TestAdjustedRatios(t *testing.T) {
	out, err := AdjustedRatios([]float64{4, 2}, []float64{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1}, out)

	_, err = AdjustedRatios([]float64{1}, nil)
	assert.Error(t, err)
}
