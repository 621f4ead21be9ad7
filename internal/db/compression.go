package db

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/ralt/pacquery/internal/scanner"
)

// nopCloser is used for decoders without resources to release
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// newDecompressor detects the compression of r from its magic bytes and
// returns a reader over the decompressed stream. The closer releases the
// decoder, not r.
func newDecompressor(r io.Reader) (io.Reader, io.Closer, error) {
	compression, br, err := scanner.DetectReader(r)
	if err != nil {
		return nil, nil, err
	}

	switch compression {
	case scanner.CompressionGzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return gr, gr, nil
	case scanner.CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return zr, closerFunc(func() error { zr.Close(); return nil }), nil
	case scanner.CompressionXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, nil, err
		}
		return xr, nopCloser{}, nil
	default:
		return br, nopCloser{}, nil
	}
}

// newCompressor wraps w with the requested compression. Closing the
// returned writer flushes the compressed stream but does not close w.
func newCompressor(w io.Writer, c scanner.Compression) (io.WriteCloser, error) {
	switch c {
	case scanner.CompressionGzip:
		return gzip.NewWriter(w), nil
	case scanner.CompressionZstd:
		return zstd.NewWriter(w)
	case scanner.CompressionXz:
		return xz.NewWriter(w)
	case scanner.CompressionNone:
		return nopWriteCloser{w}, nil
	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
