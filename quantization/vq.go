// Package quantization reduces a matrix of vectors to discrete cluster
// indices via whitening and centroid search.
package quantization

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hupe1980/zcurve/internal/floats"
	"github.com/hupe1980/zcurve/whiten"
)

// DefaultMaxIterations bounds k-means refinement so clustering always
// terminates, converged or not. Non-convergence is not an error; the
// distortion is reported as-is.
const DefaultMaxIterations = 200

// Result holds the outcome of one vector quantization run.
type Result struct {
	// Codes assigns each input row a cluster index in [0, k).
	Codes []int
	// Distortion is the mean Euclidean distance from each row to its
	// assigned centroid, measured in whitened space. Only comparable
	// between runs using the same whitening mode.
	Distortion float64
}

// Options configures a quantization run.
type Options struct {
	// Whitening is the feature transform applied before clustering.
	Whitening whiten.Mode
	// PCADims, if positive, reduces the whitened data to this many
	// principal components before clustering.
	PCADims int
	// Stride subsamples the training data: only every Stride-th row is
	// used for centroid discovery. Assignment always covers all rows.
	// Values below 1 mean no subsampling.
	Stride int
	// Clusterer is the centroid-search capability. Defaults to the
	// reference LloydClusterer.
	Clusterer Clusterer
	// MaxIterations bounds centroid refinement. Defaults to
	// DefaultMaxIterations.
	MaxIterations int
	// Rand is the random source used for seeding. Defaults to a
	// time-seeded source; inject one for reproducibility.
	Rand *rand.Rand
}

// Option configures VQ.
type Option func(*Options)

// WithWhitening sets the whitening mode.
func WithWhitening(mode whiten.Mode) Option {
	return func(o *Options) {
		o.Whitening = mode
	}
}

// WithPCA reduces the whitened data to dims principal components.
func WithPCA(dims int) Option {
	return func(o *Options) {
		o.PCADims = dims
	}
}

// WithStride trains centroids on every stride-th row only.
func WithStride(stride int) Option {
	return func(o *Options) {
		o.Stride = stride
	}
}

// WithClusterer sets the clustering backend.
func WithClusterer(c Clusterer) Option {
	return func(o *Options) {
		o.Clusterer = c
	}
}

// WithMaxIterations bounds the clustering iteration count.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithRand sets the random source used for centroid seeding.
func WithRand(rng *rand.Rand) Option {
	return func(o *Options) {
		o.Rand = rng
	}
}

// VQ vector-quantizes an MxN matrix into k clusters.
//
// The matrix is whitened per the configured mode, optionally PCA-reduced,
// and clustered; every row is then assigned to its nearest centroid. The
// codebook is ephemeral: it lives for this call only.
func VQ(ctx context.Context, m [][]float64, k int, opts ...Option) (*Result, error) {
	o := Options{
		Whitening:     whiten.Standard,
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.Clusterer == nil {
		o.Clusterer = &LloydClusterer{}
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(rand.Int63())) // nolint gosec
	}
	if o.MaxIterations < 1 {
		o.MaxIterations = DefaultMaxIterations
	}

	if k < 1 {
		return nil, fmt.Errorf("quantization: k must be >= 1, got %d", k)
	}

	if len(m) == 0 {
		return nil, fmt.Errorf("quantization: empty matrix")
	}

	white, err := whiten.Transform(m, o.Whitening)
	if err != nil {
		return nil, err
	}

	if o.PCADims > 0 {
		white, err = whiten.PCA(white, o.PCADims)
		if err != nil {
			return nil, err
		}
	}

	dim := len(white[0])

	stride := o.Stride
	if stride < 1 {
		stride = 1
	}

	training := make([]float64, 0, (len(white)/stride+1)*dim)
	trainRows := 0
	for i := 0; i < len(white); i += stride {
		training = append(training, white[i]...)
		trainRows++
	}

	if k > trainRows {
		return nil, fmt.Errorf("quantization: k=%d exceeds %d training rows", k, trainRows)
	}

	centroids, err := o.Clusterer.Train(ctx, training, dim, k, o.MaxIterations, o.Rand)
	if err != nil {
		return nil, err
	}

	codes := make([]int, len(white))
	dists := make([]float64, len(white))
	for i, row := range white {
		code, dist := o.Clusterer.Assign(row, centroids, dim)
		codes[i] = code
		dists[i] = dist
	}

	return &Result{
		Codes:      codes,
		Distortion: floats.Mean(dists),
	}, nil
}
