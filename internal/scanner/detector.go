package scanner

import (
	"bufio"
	"bytes"
	"io"
	"os"
)

// Magic bytes for compression detection
var (
	gzipMagic = []byte{0x1F, 0x8B}

	// Zstandard magic bytes (repo-add default since pacman 6)
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

	xzMagic = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// DetectCompression identifies the compression of header, the first bytes
// of a file. Anything unrecognised is treated as a plain tar stream.
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(header, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(header, xzMagic):
		return CompressionXz
	default:
		return CompressionNone
	}
}

// DetectReader peeks at r without consuming it. The returned reader must
// be used in place of r.
func DetectReader(r io.Reader) (Compression, io.Reader, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return CompressionNone, br, err
	}
	return DetectCompression(header), br, nil
}

// DetectFile determines the compression of a file on disk
func DetectFile(path string) (Compression, error) {
	f, err := os.Open(path)
	if err != nil {
		return CompressionNone, err
	}
	defer f.Close()

	c, _, err := DetectReader(f)
	return c, err
}
