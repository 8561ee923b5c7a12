package quantization

import (
	"context"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/zcurve/internal/floats"
)

// Clusterer is the pluggable centroid-search capability used by VQ.
//
// Implementations work on flattened row-major vectors (n * dim) and return
// flattened centroids (k * dim). Results of different implementations may
// differ slightly in the final centroids; the contract (codes in [0, k),
// bounded iterations) is identical.
type Clusterer interface {
	// Train discovers k centroids from the given vectors using at most
	// maxIter refinement iterations.
	Train(ctx context.Context, vectors []float64, dim, k, maxIter int, rng *rand.Rand) ([]float64, error)

	// Assign returns the index of the nearest centroid for vec and the
	// Euclidean distance to it.
	Assign(vec, centroids []float64, dim int) (int, float64)
}

// LloydClusterer is the reference k-means implementation: k-means++ seeding
// followed by Lloyd iterations. Always available; use ParallelClusterer for
// large inputs.
type LloydClusterer struct{}

// Train implements Clusterer.
func (c *LloydClusterer) Train(ctx context.Context, vectors []float64, dim, k, maxIter int, rng *rand.Rand) ([]float64, error) {
	n := len(vectors) / dim

	centroids := seedPlusPlus(vectors, dim, k, rng)

	// Start unassigned: 0 is a valid cluster index, and convergence is only
	// detected against a real previous pass.
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, k)
	sums := make([]float64, k*dim)

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step
		changed := false
		for i := 0; i < n; i++ {
			vec := vectors[i*dim : (i+1)*dim]
			best := nearest(vec, centroids, dim)
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed {
			break
		}

		updateCentroids(vectors, centroids, assignments, counts, sums, dim, rng)
	}

	return centroids, nil
}

// Assign implements Clusterer.
func (c *LloydClusterer) Assign(vec, centroids []float64, dim int) (int, float64) {
	return assign(vec, centroids, dim)
}

// ParallelClusterer is the accelerated k-means implementation. It shards the
// assignment step across worker goroutines; seeding and the update step match
// LloydClusterer. Presence changes performance, not the contract.
type ParallelClusterer struct {
	// Workers bounds the goroutines used per assignment pass.
	// Zero means GOMAXPROCS.
	Workers int
}

// Train implements Clusterer.
func (c *ParallelClusterer) Train(ctx context.Context, vectors []float64, dim, k, maxIter int, rng *rand.Rand) ([]float64, error) {
	n := len(vectors) / dim

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	centroids := seedPlusPlus(vectors, dim, k, rng)

	// Start unassigned: 0 is a valid cluster index, and convergence is only
	// detected against a real previous pass.
	assignments := make([]int, n)
	for i := range assignments {
		assignments[i] = -1
	}
	counts := make([]int, k)
	sums := make([]float64, k*dim)

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		changedPerShard := make([]bool, workers)

		g, _ := errgroup.WithContext(ctx)
		chunk := (n + workers - 1) / workers

		for w := 0; w < workers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			if lo >= hi {
				continue
			}

			g.Go(func() error {
				for i := lo; i < hi; i++ {
					vec := vectors[i*dim : (i+1)*dim]
					best := nearest(vec, centroids, dim)
					if assignments[i] != best {
						assignments[i] = best
						changedPerShard[w] = true
					}
				}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		changed := false
		for _, c := range changedPerShard {
			changed = changed || c
		}
		if !changed {
			break
		}

		updateCentroids(vectors, centroids, assignments, counts, sums, dim, rng)
	}

	return centroids, nil
}

// Assign implements Clusterer.
func (c *ParallelClusterer) Assign(vec, centroids []float64, dim int) (int, float64) {
	return assign(vec, centroids, dim)
}

// seedPlusPlus picks k initial centroids with k-means++ sampling:
// each new centroid is drawn proportional to squared distance from the
// already chosen ones.
func seedPlusPlus(vectors []float64, dim, k int, rng *rand.Rand) []float64 {
	n := len(vectors) / dim
	centroids := make([]float64, k*dim)

	first := rng.Intn(n)
	copy(centroids[0:dim], vectors[first*dim:(first+1)*dim])

	minDistSq := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		d := floats.SquaredL2(vectors[i*dim:(i+1)*dim], centroids[0:dim])
		minDistSq[i] = d
		sum += d
	}

	for c := 1; c < k; c++ {
		if sum == 0 {
			idx := rng.Intn(n)
			copy(centroids[c*dim:(c+1)*dim], vectors[idx*dim:(idx+1)*dim])
			continue
		}

		target := rng.Float64() * sum
		var cumsum float64
		chosen := 0
		for i, d := range minDistSq {
			cumsum += d
			if cumsum >= target {
				chosen = i
				break
			}
		}
		copy(centroids[c*dim:(c+1)*dim], vectors[chosen*dim:(chosen+1)*dim])

		sum = 0
		for i := 0; i < n; i++ {
			d := floats.SquaredL2(vectors[i*dim:(i+1)*dim], centroids[c*dim:(c+1)*dim])
			if d < minDistSq[i] {
				minDistSq[i] = d
			}
			sum += minDistSq[i]
		}
	}

	return centroids
}

// updateCentroids recomputes each centroid as the mean of its assigned
// vectors. Empty clusters are reseeded with a random data point.
func updateCentroids(vectors, centroids []float64, assignments, counts []int, sums []float64, dim int, rng *rand.Rand) {
	n := len(vectors) / dim
	k := len(centroids) / dim

	for i := range sums {
		sums[i] = 0
	}
	for i := range counts {
		counts[i] = 0
	}

	for i := 0; i < n; i++ {
		cluster := assignments[i]
		vec := vectors[i*dim : (i+1)*dim]
		for d := 0; d < dim; d++ {
			sums[cluster*dim+d] += vec[d]
		}
		counts[cluster]++
	}

	for j := 0; j < k; j++ {
		if counts[j] > 0 {
			centroid := centroids[j*dim : (j+1)*dim]
			copy(centroid, sums[j*dim:(j+1)*dim])
			floats.ScaleInPlace(centroid, 1/float64(counts[j]))
		} else {
			idx := rng.Intn(n)
			copy(centroids[j*dim:(j+1)*dim], vectors[idx*dim:(idx+1)*dim])
		}
	}
}

func nearest(vec, centroids []float64, dim int) int {
	k := len(centroids) / dim

	best := 0
	minDist := math.MaxFloat64

	for j := 0; j < k; j++ {
		d := floats.SquaredL2(vec, centroids[j*dim:(j+1)*dim])
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best
}

func assign(vec, centroids []float64, dim int) (int, float64) {
	best := nearest(vec, centroids, dim)
	return best, floats.L2(vec, centroids[best*dim:(best+1)*dim])
}
