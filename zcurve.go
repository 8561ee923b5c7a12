package zcurve

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/zcurve/compresslen"
	"github.com/hupe1980/zcurve/quantization"
)

// Curve holds a rate-distortion curve: parallel slices indexed by sweep
// position.
type Curve struct {
	// Ks are the cluster counts of the sweep, in input order.
	Ks []int `json:"ks"`
	// Ratios are the baseline-corrected compression ratios per k.
	Ratios []float64 `json:"ratios"`
	// Distortions are the mean quantization distances per k, in
	// whitened space.
	Distortions []float64 `json:"distortions"`
	// Occupancy counts the distinct symbols actually used per k. A value
	// well below k signals starved clusters.
	Occupancy []int `json:"occupancy"`
}

// SurrogateCurve is a Curve plus a per-k null baseline: the mean ratio over
// random permutations of each code sequence, i.e. the compressibility that
// remains with all temporal structure destroyed.
type SurrogateCurve struct {
	Curve
	SurrogateRatios []float64 `json:"surrogate_ratios"`
}

// VQRange quantizes m once per cluster count in ks.
//
// Runs are independent; they execute concurrently (bounded by
// WithParallelism) and results are returned in ks order. Each run draws its
// centroid seed from the configured random source before any run starts, so
// a seeded source gives reproducible sweeps regardless of scheduling.
func VQRange(ctx context.Context, m [][]float64, ks []int, opts ...Option) ([]*quantization.Result, error) {
	o := applyOptions(opts)
	return vqRange(ctx, m, ks, &o)
}

func vqRange(ctx context.Context, m [][]float64, ks []int, o *options) ([]*quantization.Result, error) {
	if len(ks) == 0 {
		return nil, ErrNoClusterCounts
	}

	// Seeds are drawn up front: rand.Rand is not safe for concurrent use
	// and per-run seeding keeps sweeps reproducible.
	seeds := make([]int64, len(ks))
	for i := range seeds {
		seeds[i] = o.rng.Int63()
	}

	parallelism := o.parallelism
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	results := make([]*quantization.Result, len(ks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, k := range ks {
		g.Go(func() error {
			runOpts := make([]quantization.Option, 0, len(o.vqOpts)+1)
			runOpts = append(runOpts, o.vqOpts...)
			runOpts = append(runOpts, quantization.WithRand(rand.New(rand.NewSource(seeds[i])))) // nolint gosec

			res, err := quantization.VQ(gctx, m, k, runOpts...)
			o.logger.WithK(k).LogQuantize(gctx, len(m), distortionOf(res), err)
			if err != nil {
				return fmt.Errorf("k=%d: %w", k, err)
			}

			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func distortionOf(res *quantization.Result) float64 {
	if res == nil {
		return 0
	}
	return res.Distortion
}

// CompressionCurve sweeps ks and derives the normalized compression ratio of
// each code sequence.
func CompressionCurve(ctx context.Context, m [][]float64, ks []int, opts ...Option) (*Curve, error) {
	o := applyOptions(opts)

	results, err := vqRange(ctx, m, ks, &o)
	if err != nil {
		return nil, err
	}

	curve, err := assembleCurve(ks, results, o.backend)
	if err != nil {
		return nil, err
	}

	o.logger.WithBackend(o.backend.String()).LogCurve(ctx, len(ks), 0)

	return curve, nil
}

// CompressionSurrogateCurve is CompressionCurve plus, per k, the mean ratio
// over independently shuffled copies of the code sequence. Structured data
// compresses better than its surrogates; i.i.d. data does not.
func CompressionSurrogateCurve(ctx context.Context, m [][]float64, ks []int, opts ...Option) (*SurrogateCurve, error) {
	o := applyOptions(opts)

	if o.surrogates < 1 {
		return nil, ErrInvalidSurrogates
	}

	results, err := vqRange(ctx, m, ks, &o)
	if err != nil {
		return nil, err
	}

	curve, err := assembleCurve(ks, results, o.backend)
	if err != nil {
		return nil, err
	}

	surrogate := make([]float64, len(ks))

	// Surrogate runs are independent; their average is order-independent,
	// so only seed drawing needs to stay sequential.
	type job struct {
		k, s int
		seed int64
	}

	jobs := make([]job, 0, len(ks)*o.surrogates)
	for i := range ks {
		for s := 0; s < o.surrogates; s++ {
			jobs = append(jobs, job{k: i, s: s, seed: o.rng.Int63()})
		}
	}

	sums := make([]float64, len(ks))

	parallelism := o.parallelism
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	ratios := make([]float64, len(jobs))
	for j, jb := range jobs {
		g.Go(func() error {
			shuffled := permuted(results[jb.k].Codes, rand.New(rand.NewSource(jb.seed))) // nolint gosec

			ratio, err := compresslen.NormalizedLen(o.backend, shuffled)
			if err != nil {
				return fmt.Errorf("k=%d surrogate %d: %w", ks[jb.k], jb.s, err)
			}

			ratios[j] = ratio
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for j, jb := range jobs {
		sums[jb.k] += ratios[j]
	}
	for i := range surrogate {
		surrogate[i] = sums[i] / float64(o.surrogates)
	}

	o.logger.WithBackend(o.backend.String()).LogCurve(ctx, len(ks), o.surrogates)

	return &SurrogateCurve{
		Curve:           *curve,
		SurrogateRatios: surrogate,
	}, nil
}

func assembleCurve(ks []int, results []*quantization.Result, backend compresslen.Backend) (*Curve, error) {
	curve := &Curve{
		Ks:          append([]int(nil), ks...),
		Ratios:      make([]float64, len(ks)),
		Distortions: make([]float64, len(ks)),
		Occupancy:   make([]int, len(ks)),
	}

	for i, res := range results {
		ratio, err := compresslen.NormalizedLen(backend, res.Codes)
		if err != nil {
			return nil, fmt.Errorf("k=%d: %w", ks[i], err)
		}

		curve.Ratios[i] = ratio
		curve.Distortions[i] = res.Distortion
		curve.Occupancy[i] = occupancy(res.Codes)
	}

	return curve, nil
}

// occupancy counts the distinct symbols in a code sequence.
func occupancy(codes []int) int {
	bm := roaring.New()
	for _, c := range codes {
		bm.Add(uint32(c))
	}

	return int(bm.GetCardinality())
}

// permuted returns a uniformly random permutation of codes, leaving the
// input untouched.
func permuted(codes []int, rng *rand.Rand) []int {
	out := make([]int, len(codes))
	copy(out, codes)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	return out
}
