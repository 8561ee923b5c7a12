// Package whiten provides the feature-space transforms applied before vector
// quantization.
//
// Distortion values reported by the quantizer are distances in the
// transformed space, so they are only comparable within a single whitening
// mode, never across modes.
package whiten

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Mode selects the whitening transform.
type Mode int

const (
	// Standard scales each dimension to zero mean and unit variance.
	Standard Mode = iota
	// Sphere decorrelates all dimensions via PCA whitening, keeping every
	// component (no dimensionality reduction).
	Sphere
	// MinMax scales each dimension into [0, 1].
	MinMax
	// None passes the data through untouched.
	None
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Sphere:
		return "sphere"
	case MinMax:
		return "minmax"
	case None:
		return "none"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMode returns the mode with the given stable name.
// Unknown names are a configuration error, never silently defaulted.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "standard":
		return Standard, nil
	case "sphere":
		return Sphere, nil
	case "minmax":
		return MinMax, nil
	case "none":
		return None, nil
	default:
		return 0, fmt.Errorf("whiten: unknown mode %q", name)
	}
}

// Transform whitens an MxN matrix per the given mode. The input is never
// mutated; None returns the input as-is.
func Transform(m [][]float64, mode Mode) ([][]float64, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("whiten: empty matrix")
	}

	switch mode {
	case Standard:
		return standardize(m), nil
	case Sphere:
		return pcaWhiten(m, len(m[0]))
	case MinMax:
		return minmax(m), nil
	case None:
		return m, nil
	default:
		return nil, fmt.Errorf("whiten: unknown mode %q", mode)
	}
}

// PCA applies the same decorrelating whitening transform as Sphere but keeps
// only the first dims principal components.
func PCA(m [][]float64, dims int) ([][]float64, error) {
	if len(m) == 0 {
		return nil, fmt.Errorf("whiten: empty matrix")
	}

	if dims < 1 || dims > len(m[0]) {
		return nil, fmt.Errorf("whiten: pca dims %d out of range [1, %d]", dims, len(m[0]))
	}

	return pcaWhiten(m, dims)
}

// PCARange returns a descending sweep of target dimensionalities for PCA
// experiments: n halved repeatedly, always ending ..., 2, 1 when n > 1.
func PCARange(n int) []int {
	r := []int{n}
	for n > 1 {
		if n > 3 {
			n = n / 2
		} else {
			n = n - 1
		}
		r = append(r, n)
	}

	return r
}

// standardize scales each dimension to zero mean, unit variance.
// Zero-variance dimensions are centered but left unscaled.
func standardize(m [][]float64) [][]float64 {
	rows, cols := len(m), len(m[0])

	mean := make([]float64, cols)
	for _, row := range m {
		for d, v := range row {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(rows)
	}

	std := make([]float64, cols)
	for _, row := range m {
		for d, v := range row {
			std[d] += (v - mean[d]) * (v - mean[d])
		}
	}
	for d := range std {
		std[d] = math.Sqrt(std[d] / float64(rows))
		if std[d] == 0 {
			std[d] = 1
		}
	}

	out := make([][]float64, rows)
	for i, row := range m {
		out[i] = make([]float64, cols)
		for d, v := range row {
			out[i][d] = (v - mean[d]) / std[d]
		}
	}

	return out
}

// minmax scales each dimension into [0, 1].
// Constant dimensions map to 0.
func minmax(m [][]float64) [][]float64 {
	rows, cols := len(m), len(m[0])

	lo := make([]float64, cols)
	hi := make([]float64, cols)
	copy(lo, m[0])
	copy(hi, m[0])

	for _, row := range m {
		for d, v := range row {
			if v < lo[d] {
				lo[d] = v
			}
			if v > hi[d] {
				hi[d] = v
			}
		}
	}

	out := make([][]float64, rows)
	for i, row := range m {
		out[i] = make([]float64, cols)
		for d, v := range row {
			if span := hi[d] - lo[d]; span > 0 {
				out[i][d] = (v - lo[d]) / span
			}
		}
	}

	return out
}

// pcaWhiten centers the data, projects it onto its principal components via
// SVD and rescales each retained component to unit variance.
func pcaWhiten(m [][]float64, dims int) ([][]float64, error) {
	rows, cols := len(m), len(m[0])

	centered := mat.NewDense(rows, cols, nil)
	mean := make([]float64, cols)
	for _, row := range m {
		for d, v := range row {
			mean[d] += v
		}
	}
	for d := range mean {
		mean[d] /= float64(rows)
	}
	for i, row := range m {
		for d, v := range row {
			centered.Set(i, d, v-mean[d])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThinV); !ok {
		return nil, fmt.Errorf("whiten: svd failed to converge")
	}

	var v mat.Dense
	svd.VTo(&v)
	sigma := svd.Values(nil)

	var scores mat.Dense
	scores.Mul(centered, &v)

	// Unit variance per component: divide by sigma/sqrt(rows-1).
	// Components with (near) zero singular value carry no data and stay zero.
	norm := math.Sqrt(float64(rows - 1))
	if rows == 1 {
		norm = 1
	}

	// Thin SVD yields min(rows, cols) components; requested dims beyond
	// that carry no data and stay zero.
	avail := dims
	if len(sigma) < avail {
		avail = len(sigma)
	}

	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, dims)
		for d := 0; d < avail; d++ {
			if sigma[d] > 1e-12 {
				out[i][d] = scores.At(i, d) * norm / sigma[d]
			}
		}
	}

	return out, nil
}
