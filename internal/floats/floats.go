// Package floats provides the float64 vector primitives used by the
// quantization package.
package floats

import "math"

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var distance float64
	for i := range a {
		distance += (a[i] - b[i]) * (a[i] - b[i])
	}

	return distance
}

// L2 calculates the Euclidean distance between two vectors.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace(a []float64, scalar float64) {
	for i := range a {
		a[i] *= scalar
	}
}

// Mean returns the arithmetic mean of a. Returns 0 for an empty slice.
func Mean(a []float64) float64 {
	if len(a) == 0 {
		return 0
	}

	var sum float64
	for _, v := range a {
		sum += v
	}

	return sum / float64(len(a))
}
