package compresslen

import (
	"errors"
	"fmt"

	"github.com/hupe1980/zcurve/codec"
)

// ErrDegenerateBaseline is returned when the baseline-corrected compressed
// length is not positive, which happens for empty or pathologically tiny
// sequences. The ratio is undefined there; callers must guard, not divide.
var ErrDegenerateBaseline = errors.New("compresslen: baseline-corrected length is not positive")

// SymbolsLen returns the compressed length of a symbol sequence after
// fixed-width byte encoding.
func SymbolsLen(b Backend, codes []int) (int, error) {
	data, err := codec.EncodeSymbols(codes)
	if err != nil {
		return 0, err
	}

	return CompressedLen(b, data)
}

// NormalizedLen returns the baseline-corrected compression ratio of a symbol
// sequence:
//
//	len(codes) / (compressedLen(codes) - compressedLen(empty))
//
// Subtracting the empty-sequence length removes the constant per-call framing
// overhead, so the ratio reflects only the compressibility of the payload.
// Larger means more compressible (less information per symbol).
//
// Returns ErrDegenerateBaseline when the denominator is not positive.
func NormalizedLen(b Backend, codes []int) (float64, error) {
	payloadLen, err := SymbolsLen(b, codes)
	if err != nil {
		return 0, err
	}

	baseLen, err := SymbolsLen(b, nil)
	if err != nil {
		return 0, err
	}

	denom := payloadLen - baseLen
	if denom <= 0 {
		return 0, fmt.Errorf("%w (backend %s, %d symbols, %d compressed, %d baseline)",
			ErrDegenerateBaseline, b, len(codes), payloadLen, baseLen)
	}

	return float64(len(codes)) / float64(denom), nil
}
