// Package zcurve estimates the information content of a vector signal by
// quantizing it at a sweep of cluster counts and measuring how well
// general-purpose compressors compress the resulting symbol sequences.
//
// As the cluster count k grows, the compressibility of the cluster-index
// sequence approaches a limit related to the signal's entropy while the
// quantization distortion falls; the resulting rate-distortion curve
// characterizes the dataset empirically.
//
// # Quick start
//
//	ctx := context.Background()
//	curve, _ := zcurve.CompressionSurrogateCurve(ctx, signal, zcurve.DefaultClusterRange(),
//	    zcurve.WithBackend(compresslen.BackendDeflate),
//	    zcurve.WithRand(rand.New(rand.NewSource(42))),
//	)
//	// curve.Ks, curve.Ratios, curve.SurrogateRatios, curve.Distortions
//
// Multi-scale analysis first decomposes the signal with the pyramid package
// and runs a curve per level. Plotting is out of scope: curves are plain
// parallel slices for an external visualization collaborator, with the
// metric package supplying the dB-space helpers such collaborators need.
package zcurve
