package floats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, 8.0, SquaredL2([]float64{0, 0}, []float64{2, 2}))
	assert.Equal(t, 0.0, SquaredL2([]float64{1, 1}, []float64{1, 1}))
}

func TestL2(t *testing.T) {
	assert.Equal(t, 5.0, L2([]float64{0, 0}, []float64{3, 4}))
}

func TestScaleInPlace(t *testing.T) {
	v := []float64{1, -2, 3}
	ScaleInPlace(v, 2)
	assert.Equal(t, []float64{2, -4, 6}, v)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 0.0, Mean(nil))
}
