package db

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ralt/pacquery/internal/desc"
	"github.com/ralt/pacquery/internal/models"
)

// ReadLocal loads the installed package database under dbPath.
//
// The ALPM_DB_VERSION marker must hold models.SupportedDBVersion, otherwise
// an ErrDBVersion error is returned before any package directory is read.
// Records that fail to parse are logged and collected in Skipped.
func ReadLocal(dbPath string) (*Database, error) {
	root := LocalPath(dbPath)

	marker, err := os.ReadFile(filepath.Join(root, VersionFile))
	if err != nil {
		return nil, ioError("", fmt.Errorf("failed to read database version: %w", err))
	}
	if found := strings.TrimSpace(string(marker)); found != models.SupportedDBVersion {
		return nil, &models.DBError{
			Type: models.ErrDBVersion,
			Err: &models.VersionMismatchError{
				Expected: models.SupportedDBVersion,
				Found:    found,
			},
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, ioError("", fmt.Errorf("failed to list %s: %w", root, err))
	}

	result := &Database{Name: LocalRepoName}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		dir := filepath.Join(root, entry.Name())
		logrus.Debugf("Reading local package: %s", entry.Name())

		pkg, err := readLocalPackage(dir)
		if err != nil {
			if isRecordError(err) {
				logrus.Warnf("Skipping %s: %v", entry.Name(), err)
				result.Skipped = append(result.Skipped, err)
				continue
			}
			return nil, err
		}
		result.Packages = append(result.Packages, *pkg)
	}

	logrus.Debugf("Loaded %d local packages (%d skipped)", len(result.Packages), len(result.Skipped))
	return result, nil
}

// readLocalPackage reads one package directory
func readLocalPackage(dir string) (*models.Package, error) {
	_, statErr := os.Stat(filepath.Join(dir, InstallFile))
	installScript := statErr == nil

	data, err := os.ReadFile(filepath.Join(dir, DescFile))
	if err != nil {
		return nil, ioError(filepath.Base(dir), err)
	}

	d, err := desc.Parse(data, installScript)
	if err != nil {
		return nil, err
	}

	filesData, err := os.ReadFile(filepath.Join(dir, FilesFile))
	if err != nil {
		return nil, ioError(d.Name, err)
	}

	files, err := parseFiles(filesData)
	if err != nil {
		return nil, ioError(d.Name, fmt.Errorf("failed to read file list: %w", err))
	}

	return &models.Package{Desc: *d, Files: files}, nil
}

// parseFiles extracts the owned paths from a local "files" file: the
// first line is the %FILES% header and the list ends at the first blank
// line.
func parseFiles(data []byte) ([]string, error) {
	var files []string

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxPathSize)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		line := scanner.Text()
		if line == "" {
			break
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// isRecordError reports whether err concerns a single record's content
// rather than the underlying storage
func isRecordError(err error) bool {
	var dbErr *models.DBError
	if !errors.As(err, &dbErr) {
		return false
	}
	switch dbErr.Type {
	case models.ErrMissingField, models.ErrMalformedDepend, models.ErrMalformedField:
		return true
	default:
		return false
	}
}

func ioError(pkg string, err error) error {
	return &models.DBError{Type: models.ErrIO, Package: pkg, Err: err}
}
