// Package codec serializes cluster-index sequences into fixed-width bytes.
//
// The encoding is deliberately trivial: no compression, no escaping, no
// framing. The byte width is chosen from the value range and the byte order
// is fixed to little-endian, so compressed-length measurements taken on the
// output are reproducible across platforms. Changing either the width rule
// or the byte order is a breaking change for any stored curve data.
package codec

import (
	"encoding/binary"
	"fmt"
)

// Symbol widths in bytes.
const (
	Width1 = 1
	Width2 = 2
)

// MaxSymbol is the largest value representable by the widest encoding.
const MaxSymbol = 1<<16 - 1

// SymbolWidth returns the byte width EncodeSymbols would choose for codes.
//
// An empty sequence, or one whose maximum value is below 255, is encoded one
// byte per symbol; anything else two bytes per symbol. The boundary is below
// 255, not 256: a sequence containing 255 already switches to two bytes.
func SymbolWidth(codes []int) int {
	maxCode := 0
	for _, c := range codes {
		if c > maxCode {
			maxCode = c
		}
	}

	if len(codes) == 0 || maxCode < 255 {
		return Width1
	}

	return Width2
}

// EncodeSymbols encodes a sequence of non-negative integers as a byte string,
// one or two little-endian bytes per symbol depending on SymbolWidth.
//
// Values outside [0, MaxSymbol] are rejected.
func EncodeSymbols(codes []int) ([]byte, error) {
	width := SymbolWidth(codes)

	out := make([]byte, len(codes)*width)
	for i, c := range codes {
		if c < 0 || c > MaxSymbol {
			return nil, fmt.Errorf("codec: symbol %d at index %d out of range [0, %d]", c, i, MaxSymbol)
		}

		if width == Width1 {
			out[i] = byte(c)
		} else {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(c))
		}
	}

	return out, nil
}

// DecodeSymbols reverses EncodeSymbols given the width used for encoding.
func DecodeSymbols(data []byte, width int) ([]int, error) {
	switch width {
	case Width1, Width2:
	default:
		return nil, fmt.Errorf("codec: invalid symbol width %d", width)
	}

	if len(data)%width != 0 {
		return nil, fmt.Errorf("codec: data length %d not a multiple of width %d", len(data), width)
	}

	codes := make([]int, len(data)/width)
	for i := range codes {
		if width == Width1 {
			codes[i] = int(data[i])
		} else {
			codes[i] = int(binary.LittleEndian.Uint16(data[i*2:]))
		}
	}

	return codes, nil
}
