// Package db loads package collections from pacman's local database
// directory and from sync database archives.
package db

import (
	"path/filepath"

	"github.com/ralt/pacquery/internal/models"
)

// Layout of a pacman database root
const (
	LocalDir      = "local"
	SyncDir       = "sync"
	VersionFile   = "ALPM_DB_VERSION"
	DescFile      = "desc"
	FilesFile     = "files"
	InstallFile   = "install"
	LocalRepoName = "local"
)

// maxPathSize bounds a single line of a local "files" file
const maxPathSize = 1 << 20

// Database is a loaded package collection. It is a read-only snapshot;
// reload rather than modify.
type Database struct {
	Name     string
	Packages []models.Package
	// Skipped holds one *models.DBError per record that failed to parse
	Skipped []error
}

// LocalPath returns the local database directory under dbPath
func LocalPath(dbPath string) string {
	return filepath.Join(dbPath, LocalDir)
}

// SyncPath returns the path of a named sync database under dbPath
func SyncPath(dbPath, repo string) string {
	return filepath.Join(dbPath, SyncDir, repo+".db")
}
