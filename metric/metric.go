// Package metric provides the decibel and ratio math that plotting
// collaborators apply to compression curves.
//
// The arithmetic is fixed by convention, not approximated: distortion is
// reported as 20*log10(d) dB, and the expected quantization noise for b bits
// of resolution is 6.02*b - 1.76 dB.
package metric

import (
	"fmt"
	"math"
)

// DB converts a linear amplitude ratio to decibels (20*log10).
func DB(x float64) float64 {
	return 20 * math.Log10(x)
}

// BitsForClusters returns the symbol resolution log2(k) in bits.
func BitsForClusters(k int) float64 {
	return math.Log2(float64(k))
}

// ExpectedQuantizationNoiseDB returns the classic quantization SNR estimate
// 6.02*bits - 1.76 for a uniform quantizer with the given resolution.
func ExpectedQuantizationNoiseDB(bits float64) float64 {
	return 6.02*bits - 1.76
}

// ByteInformationCeiling returns 8/log2(k): the maximum compression ratio a
// byte-encoded sequence of k distinct symbols admits, since each symbol can
// carry at most log2(k) of the 8 bits it occupies.
func ByteInformationCeiling(k int) float64 {
	return 8 / math.Log2(float64(k))
}

// RelativeDistortionDB converts per-k distortions into dB relative to the
// expected quantization noise at that k: 20*log10(d) + (6.02*log2(k) - 1.76).
// A value near zero means the quantizer behaves like an ideal uniform one.
func RelativeDistortionDB(ks []int, distortions []float64) ([]float64, error) {
	if len(ks) != len(distortions) {
		return nil, fmt.Errorf("metric: %d ks vs %d distortions", len(ks), len(distortions))
	}

	out := make([]float64, len(ks))
	for i := range ks {
		out[i] = DB(distortions[i]) + ExpectedQuantizationNoiseDB(BitsForClusters(ks[i]))
	}

	return out, nil
}

// AdjustedRatios divides each plain ratio by its surrogate baseline,
// yielding the structure-only compressibility (1.0 = no structure).
func AdjustedRatios(ratios, surrogates []float64) ([]float64, error) {
	if len(ratios) != len(surrogates) {
		return nil, fmt.Errorf("metric: %d ratios vs %d surrogates", len(ratios), len(surrogates))
	}

	out := make([]float64, len(ratios))
	for i := range ratios {
		out[i] = ratios[i] / surrogates[i]
	}

	return out, nil
}
