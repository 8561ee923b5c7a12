package zcurve

import "math"

// defaultClusterRange is built once at init and never mutated; callers get
// copies via DefaultClusterRange.
var defaultClusterRange = geometricRange(1, 7.99, 65)

// DefaultClusterRange returns the default cluster-count sweep: 65
// geometrically spaced points from 2^1 to 2^7.99, truncated to integers and
// de-duplicated, giving even curve coverage in log space. The returned slice
// is a fresh copy on every call.
func DefaultClusterRange() []int {
	ks := make([]int, len(defaultClusterRange))
	copy(ks, defaultClusterRange)
	return ks
}

// geometricRange returns unique integer truncations of 2^x for points
// linearly spaced in [lo, hi].
func geometricRange(lo, hi float64, points int) []int {
	var ks []int

	step := (hi - lo) / float64(points-1)
	for i := 0; i < points; i++ {
		k := int(math.Pow(2, lo+float64(i)*step))
		if len(ks) == 0 || k != ks[len(ks)-1] {
			ks = append(ks, k)
		}
	}

	return ks
}
