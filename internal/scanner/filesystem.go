package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// SyncDBSuffix is the file suffix of a sync database
const SyncDBSuffix = ".db"

// FileSystemScanner implements Scanner for a pacman sync directory
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan lists "<repo>.db" files directly inside dir, sorted by name.
// Subdirectories and signature files are skipped.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]SyncDB, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	var dbs []SyncDB
	for _, entry := range entries {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SyncDBSuffix) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			logrus.Warnf("Failed to stat %s: %v", path, err)
			continue
		}
		if info.IsDir() {
			continue
		}

		compression, err := DetectFile(path)
		if err != nil {
			logrus.Warnf("Failed to detect compression for %s: %v", path, err)
			continue
		}

		logrus.Debugf("Found %s sync database: %s", compression, path)

		dbs = append(dbs, SyncDB{
			Name:        strings.TrimSuffix(entry.Name(), SyncDBSuffix),
			Path:        path,
			Size:        info.Size(),
			Compression: compression,
		})
	}

	logrus.Debugf("Found %d sync databases in %s", len(dbs), dir)
	return dbs, nil
}

// FindSyncDBs is a convenience wrapper around FileSystemScanner.Scan
func FindSyncDBs(ctx context.Context, dir string) ([]SyncDB, error) {
	return NewFileSystemScanner().Scan(ctx, dir)
}
