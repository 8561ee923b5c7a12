// Package compresslen measures how well general-purpose compressors compress
// a byte string, without ever exposing the compressed bytes.
//
// It is a length oracle: every backend is configured for maximum ratio and
// minimal framing (no container header, no checksum where the format allows),
// and only the compressed length is returned. Lengths are deterministic for
// identical input and backend, which keeps compression curves comparable
// across runs and platforms.
package compresslen

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz/lzma"
)

// Backend selects the compression algorithm used by the length oracle.
type Backend int

const (
	// BackendLZMA is a distance-5 delta filter followed by a raw LZMA2
	// stream. Slowest, strongest entropy coding.
	BackendLZMA Backend = iota
	// BackendDeflate is a raw deflate stream at maximum compression,
	// with no zlib header and no checksum.
	BackendDeflate
	// BackendZstd is zstandard at its best compression level.
	BackendZstd
	// BackendLZ4 is LZ4 block compression. Fast, weakest ratio; useful
	// for cheap curve previews.
	BackendLZ4
)

func (b Backend) String() string {
	switch b {
	case BackendLZMA:
		return "lzma"
	case BackendDeflate:
		return "deflate"
	case BackendZstd:
		return "zstd"
	case BackendLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(b))
	}
}

// ParseBackend returns the backend with the given stable name.
// Unknown names are a configuration error, never silently defaulted.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "lzma":
		return BackendLZMA, nil
	case "deflate":
		return BackendDeflate, nil
	case "zstd":
		return BackendZstd, nil
	case "lz4":
		return BackendLZ4, nil
	default:
		return 0, fmt.Errorf("compresslen: unknown backend %q", name)
	}
}

// deltaDist is the byte distance of the delta pre-filter applied before the
// LZMA2 stream. Symbol sequences encoded two bytes per symbol gain from
// differencing at a small fixed stride.
const deltaDist = 5

var zstdEncoderPool sync.Pool

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

// CompressedLen returns the length in bytes of data compressed with the given
// backend. The compressed bytes themselves are discarded.
//
// Empty input is valid and yields the backend's minimum framing overhead.
func CompressedLen(b Backend, data []byte) (int, error) {
	switch b {
	case BackendLZMA:
		return lzmaLen(data)
	case BackendDeflate:
		return deflateLen(data)
	case BackendZstd:
		return zstdLen(data)
	case BackendLZ4:
		return lz4Len(data)
	default:
		return 0, fmt.Errorf("compresslen: unknown backend %q", b)
	}
}

// lzmaLen compresses with a delta pre-filter and a raw LZMA2 stream.
// The delta filter is applied by hand so the stream can stay containerless;
// the xz container would add exactly the header and checksum overhead this
// oracle must exclude.
func lzmaLen(data []byte) (int, error) {
	filtered := make([]byte, len(data))
	for i := range data {
		if i < deltaDist {
			filtered[i] = data[i]
		} else {
			filtered[i] = data[i] - data[i-deltaDist]
		}
	}

	var buf bytes.Buffer

	w, err := lzma.Writer2Config{DictCap: 1 << 23}.NewWriter2(&buf)
	if err != nil {
		return 0, fmt.Errorf("compresslen: lzma writer: %w", err)
	}

	if _, err := w.Write(filtered); err != nil {
		return 0, fmt.Errorf("compresslen: lzma write: %w", err)
	}

	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("compresslen: lzma close: %w", err)
	}

	return buf.Len(), nil
}

func deflateLen(data []byte) (int, error) {
	var buf bytes.Buffer

	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return 0, fmt.Errorf("compresslen: deflate writer: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("compresslen: deflate write: %w", err)
	}

	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("compresslen: deflate close: %w", err)
	}

	return buf.Len(), nil
}

func zstdLen(data []byte) (int, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return len(enc.EncodeAll(data, nil)), nil
}

// lz4Len uses LZ4 block compression. Incompressible blocks are reported at
// their stored (input) length, matching how a block store would hold them.
func lz4Len(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return 0, fmt.Errorf("compresslen: lz4 compress: %w", err)
	}

	if n == 0 { // Incompressible
		return len(data), nil
	}

	return n, nil
}
