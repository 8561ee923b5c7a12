package compresslen

import "fmt"

// NCD computes the normalized compression distance between two byte strings:
//
//	(len(ab) - min(len(a), len(b))) / max(len(a), len(b))
//
// over compressed lengths. Values near 0 mean a and b share most of their
// information; values near 1 mean they are unrelated.
// See https://en.wikipedia.org/wiki/Normalized_compression_distance
func NCD(backend Backend, a, b []byte) (float64, error) {
	ab := make([]byte, 0, len(a)+len(b))
	ab = append(ab, a...)
	ab = append(ab, b...)

	zab, err := CompressedLen(backend, ab)
	if err != nil {
		return 0, err
	}

	za, err := CompressedLen(backend, a)
	if err != nil {
		return 0, err
	}

	zb, err := CompressedLen(backend, b)
	if err != nil {
		return 0, err
	}

	lo, hi := za, zb
	if lo > hi {
		lo, hi = hi, lo
	}

	if hi == 0 {
		return 0, fmt.Errorf("compresslen: ncd undefined for empty inputs")
	}

	return float64(zab-lo) / float64(hi), nil
}
