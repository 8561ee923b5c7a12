package zcurve

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/zcurve/compresslen"
	"github.com/hupe1980/zcurve/quantization"
	"github.com/hupe1980/zcurve/whiten"
)

var blobCenters = [][2]float64{{0, 0}, {0, 20}, {20, 0}, {20, 20}}

// blobSignal draws n points whose blob membership follows order: "iid"
// scatters memberships uniformly, "runs" keeps each blob's points
// contiguous so the code sequence has long runs.
func blobSignal(n int, spread float64, order string, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))

	members := make([]int, n)
	for i := range members {
		if order == "runs" {
			members[i] = i / (n / len(blobCenters))
			if members[i] >= len(blobCenters) {
				members[i] = len(blobCenters) - 1
			}
		} else {
			members[i] = rng.Intn(len(blobCenters))
		}
	}

	m := make([][]float64, n)
	for i, b := range members {
		m[i] = []float64{
			blobCenters[b][0] + rng.NormFloat64()*spread,
			blobCenters[b][1] + rng.NormFloat64()*spread,
		}
	}

	return m
}

func TestVQRange_OrderAndIndependence(t *testing.T) {
	ctx := context.Background()
	m := blobSignal(128, 1, "iid", 1)
	ks := []int{2, 4, 8}

	results, err := VQRange(ctx, m, ks, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	require.Len(t, results, len(ks))

	for i, k := range ks {
		require.Len(t, results[i].Codes, len(m))
		for _, code := range results[i].Codes {
			assert.GreaterOrEqual(t, code, 0)
			assert.Less(t, code, k)
		}
	}
}

func TestVQRange_ReproducibleWithSeed(t *testing.T) {
	ctx := context.Background()
	m := blobSignal(128, 1, "iid", 2)
	ks := []int{2, 4, 8, 16}

	run := func() []*quantization.Result {
		results, err := VQRange(ctx, m, ks,
			WithRand(rand.New(rand.NewSource(7))),
			WithParallelism(4),
		)
		require.NoError(t, err)
		return results
	}

	first, second := run(), run()
	for i := range first {
		assert.Equal(t, first[i].Codes, second[i].Codes, "k=%d", ks[i])
		assert.Equal(t, first[i].Distortion, second[i].Distortion, "k=%d", ks[i])
	}
}

func TestVQRange_EmptyKs(t *testing.T) {
	_, err := VQRange(context.Background(), blobSignal(16, 1, "iid", 3), nil)
	assert.ErrorIs(t, err, ErrNoClusterCounts)
}

func TestCompressionCurve_EndToEnd(t *testing.T) {
	ctx := context.Background()
	m := blobSignal(256, 0.5, "iid", 4)
	ks := []int{2, 4, 8, 16, 32}

	curve, err := CompressionCurve(ctx, m, ks,
		WithRand(rand.New(rand.NewSource(4))),
	)
	require.NoError(t, err)

	require.Equal(t, ks, curve.Ks)
	require.Len(t, curve.Ratios, len(ks))
	require.Len(t, curve.Distortions, len(ks))
	require.Len(t, curve.Occupancy, len(ks))

	// Distortion drops sharply up to the true cluster count, then
	// plateaus.
	assert.Greater(t, curve.Distortions[0], curve.Distortions[1]*3, "k=2 vs k=4")
	assert.Less(t,
		curve.Distortions[1]-curve.Distortions[2],
		curve.Distortions[0]-curve.Distortions[1],
		"plateau after the knee")

	// Two merged blobs compress better than thirty-two fragments.
	assert.Greater(t, curve.Ratios[0], curve.Ratios[len(ks)-1])

	// Measured information (bits per symbol) rises toward the 2-bit
	// content of four equiprobable blobs.
	bitsAt := func(i int) float64 { return 8 / curve.Ratios[i] }
	assert.Greater(t, bitsAt(1), bitsAt(0))
	assert.InDelta(t, 2.0, bitsAt(1), 0.9)

	// All four blobs get symbols at k=4.
	assert.Equal(t, 4, curve.Occupancy[1])
}

func TestCompressionCurve_LZMABackend(t *testing.T) {
	ctx := context.Background()
	m := blobSignal(128, 0.5, "iid", 5)

	curve, err := CompressionCurve(ctx, m, []int{4},
		WithBackend(compresslen.BackendLZMA),
		WithRand(rand.New(rand.NewSource(5))),
	)
	require.NoError(t, err)
	assert.Greater(t, curve.Ratios[0], 0.0)
}

func TestCompressionSurrogateCurve_StructuredBeatsSurrogate(t *testing.T) {
	ctx := context.Background()
	// Contiguous blob membership: the code sequence is four long runs.
	m := blobSignal(512, 0.5, "runs", 6)

	curve, err := CompressionSurrogateCurve(ctx, m, []int{4},
		WithRand(rand.New(rand.NewSource(6))),
		WithSurrogates(5),
	)
	require.NoError(t, err)

	// Runs compress far better than any shuffle of them.
	assert.Greater(t, curve.Ratios[0], curve.SurrogateRatios[0]*2)
}

func TestCompressionSurrogateCurve_IIDMatchesSurrogate(t *testing.T) {
	ctx := context.Background()
	m := blobSignal(1024, 0.5, "iid", 7)

	curve, err := CompressionSurrogateCurve(ctx, m, []int{4},
		WithRand(rand.New(rand.NewSource(7))),
		WithSurrogates(5),
	)
	require.NoError(t, err)

	// No structure to destroy: plain and surrogate agree within noise.
	assert.InEpsilon(t, curve.SurrogateRatios[0], curve.Ratios[0], 0.15)
}

func TestCompressionSurrogateCurve_InvalidSurrogates(t *testing.T) {
	_, err := CompressionSurrogateCurve(context.Background(),
		blobSignal(64, 1, "iid", 8), []int{4}, WithSurrogates(0))
	assert.ErrorIs(t, err, ErrInvalidSurrogates)
}

func TestCompressionCurve_VQOptionsPassThrough(t *testing.T) {
	ctx := context.Background()
	m := blobSignal(128, 0.5, "iid", 9)

	curve, err := CompressionCurve(ctx, m, []int{4},
		WithRand(rand.New(rand.NewSource(9))),
		WithVQOptions(
			quantization.WithWhitening(whiten.Sphere),
			quantization.WithClusterer(&quantization.ParallelClusterer{}),
		),
	)
	require.NoError(t, err)
	assert.Len(t, curve.Ratios, 1)
}

func TestPermuted_PreservesMultiset(t *testing.T) {
	codes := []int{0, 0, 0, 1, 1, 2, 3, 3, 3, 3}

	out := permuted(codes, rand.New(rand.NewSource(1)))

	count := func(s []int) map[int]int {
		c := map[int]int{}
		for _, v := range s {
			c[v]++
		}
		return c
	}

	assert.Equal(t, count(codes), count(out))
	assert.Equal(t, []int{0, 0, 0, 1, 1, 2, 3, 3, 3, 3}, codes)
}

func TestOccupancy(t *testing.T) {
	assert.Equal(t, 0, occupancy(nil))
	assert.Equal(t, 1, occupancy([]int{5, 5, 5}))
	assert.Equal(t, 3, occupancy([]int{0, 1, 2, 1, 0}))
}
