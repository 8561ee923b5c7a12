// Package pyramid builds multi-resolution representations of a vector signal.
//
// A signal is an ordered sequence of samples, each an N-dimensional vector.
// The Gaussian pyramid progressively low-pass filters and decimates the
// signal; the Laplacian pyramid keeps the high-frequency residual at each
// scale instead. Decimation supports non-integer factors via a rational
// up/down resampling approximation.
package pyramid

import (
	"fmt"
	"math"
)

// maxDenominator bounds the rational approximation of the decimation factor.
const maxDenominator = 10

// Gaussian builds a Gaussian (low-pass) pyramid.
//
// Level 0 is the unmodified input. Each following level is the previous one
// smoothed with a Gaussian of standard deviation sqrt(factor²−1), then
// resampled by the rational approximation of factor. Iteration stops once a
// level is no longer than minLength, or once decimation stops shrinking the
// signal: rational resampling rounds the output length up, so very short
// levels can stall (e.g. ⌈2·2/3⌉ = 2 for factor 1.5). Level lengths are
// strictly decreasing.
func Gaussian(signal [][]float64, factor float64, minLength int) ([][][]float64, error) {
	if err := validate(signal, factor, minLength); err != nil {
		return nil, err
	}

	up, down := ratApprox(factor, maxDenominator)
	sigma := math.Sqrt(factor*factor - 1)

	levels := [][][]float64{signal}
	for len(levels[len(levels)-1]) > minLength {
		smoothed := smooth(levels[len(levels)-1], sigma)

		next := resample(smoothed, up, down)
		if len(next) >= len(smoothed) {
			break
		}

		levels = append(levels, next)
	}

	return levels, nil
}

// Laplacian builds a Laplacian (residual) pyramid.
//
// Each emitted level is the difference between the current signal and its
// smoothed (pre-decimation) version; iteration continues on the decimated
// smoothed signal, stopping under the same length rules as Gaussian. Only residuals are emitted: the coarsest low-pass tail is
// dropped, so exact reconstruction additionally needs that final smoothed
// signal, which callers must retain themselves if they want it.
func Laplacian(signal [][]float64, factor float64, minLength int) ([][][]float64, error) {
	if err := validate(signal, factor, minLength); err != nil {
		return nil, err
	}

	up, down := ratApprox(factor, maxDenominator)
	sigma := math.Sqrt(factor*factor - 1)

	var levels [][][]float64

	current := signal
	for len(current) > minLength {
		smoothed := smooth(current, sigma)
		levels = append(levels, diff(current, smoothed))

		next := resample(smoothed, up, down)
		if len(next) >= len(current) {
			break
		}

		current = next
	}

	return levels, nil
}

func validate(signal [][]float64, factor float64, minLength int) error {
	// factor == 1 would never reduce the signal and loop forever.
	if factor <= 1 {
		return fmt.Errorf("pyramid: factor must be > 1, got %g", factor)
	}

	if minLength < 1 {
		return fmt.Errorf("pyramid: minLength must be >= 1, got %d", minLength)
	}

	if len(signal) == 0 {
		return fmt.Errorf("pyramid: empty signal")
	}

	return nil
}

// ratApprox approximates factor as a fraction num/den with den <= maxDen via
// continued fractions, and returns (up, down) = (den, num): repeating each
// sample den times and keeping every num-th sample resamples by 1/factor.
func ratApprox(factor float64, maxDen int) (up, down int) {
	// Convergents p/q of the continued fraction expansion.
	p0, q0 := 0, 1
	p1, q1 := 1, 0

	x := factor
	for {
		a := int(math.Floor(x))

		p2 := a*p1 + p0
		q2 := a*q1 + q0
		if q2 > maxDen {
			break
		}

		p0, q0 = p1, q1
		p1, q1 = p2, q2

		frac := x - float64(a)
		if frac < 1e-12 {
			break
		}
		x = 1 / frac
	}

	return q1, p1
}

// smooth applies a 1-D Gaussian filter along the sample axis, independently
// per dimension. The kernel is truncated at 4 sigma and boundaries reflect.
func smooth(signal [][]float64, sigma float64) [][]float64 {
	n := len(signal)
	dim := len(signal[0])

	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)

	var sum float64
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dim)

		for t, w := range kernel {
			j := reflect(i+t-radius, n)
			for d := 0; d < dim; d++ {
				out[i][d] += w * signal[j][d]
			}
		}
	}

	return out
}

// reflect maps an out-of-range index into [0, n) with mirror-without-repeat
// boundary handling: (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}

	return i
}

// resample repeats each sample up times, then keeps every down-th sample.
// Rows are shared, not copied; pyramid levels are read-only by contract.
func resample(signal [][]float64, up, down int) [][]float64 {
	repeated := make([][]float64, 0, len(signal)*up)
	for _, row := range signal {
		for r := 0; r < up; r++ {
			repeated = append(repeated, row)
		}
	}

	out := make([][]float64, 0, (len(repeated)+down-1)/down)
	for i := 0; i < len(repeated); i += down {
		out = append(out, repeated[i])
	}

	return out
}

func diff(a, b [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i := range a {
		out[i] = make([]float64, len(a[i]))
		for d := range a[i] {
			out[i][d] = a[i][d] - b[i][d]
		}
	}

	return out
}
