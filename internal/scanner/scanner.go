package scanner

import "context"

// Compression represents the container compression of a database archive
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionXz
)

// String returns the string representation of Compression
func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionXz:
		return "xz"
	default:
		return "none"
	}
}

// SyncDB is a sync database file found during scanning
type SyncDB struct {
	Name        string
	Path        string
	Size        int64
	Compression Compression
}

// Scanner interface for locating sync databases
type Scanner interface {
	// Scan lists the sync databases in a directory
	Scan(ctx context.Context, dir string) ([]SyncDB, error)
}
