package db

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"

	"github.com/ralt/pacquery/internal/desc"
	"github.com/ralt/pacquery/internal/models"
	"github.com/ralt/pacquery/internal/scanner"
)

// ReadSyncRepo loads the sync database of a named repository under dbPath
func ReadSyncRepo(dbPath, repo string) (*Database, error) {
	return ReadSync(SyncPath(dbPath, repo), repo)
}

// ReadSync loads a sync database archive. Only entries whose file name is
// "desc" are parsed; sync packages never carry file lists.
func ReadSync(dbFile, repo string) (*Database, error) {
	f, err := os.Open(dbFile)
	if err != nil {
		return nil, ioError("", err)
	}
	defer f.Close()

	result, err := readSyncArchive(f, repo)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Loaded %d packages from %s (%d skipped)", len(result.Packages), dbFile, len(result.Skipped))
	return result, nil
}

func readSyncArchive(r io.Reader, repo string) (*Database, error) {
	dr, closer, err := newDecompressor(r)
	if err != nil {
		return nil, ioError("", fmt.Errorf("failed to open %s database: %w", repo, err))
	}
	defer closer.Close()

	result := &Database{Name: repo}
	tr := tar.NewReader(dr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ioError("", err)
		}

		if !header.FileInfo().Mode().IsRegular() || path.Base(header.Name) != DescFile {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, ioError(header.Name, err)
		}

		d, err := desc.Parse(data, false)
		if err != nil {
			if isRecordError(err) {
				logrus.Warnf("Skipping %s in %s: %v", header.Name, repo, err)
				result.Skipped = append(result.Skipped, err)
				continue
			}
			return nil, err
		}
		result.Packages = append(result.Packages, models.Package{Desc: *d})
	}

	return result, nil
}

// WriteSync writes descs as a sync database archive to w, one
// "<name>-<version>/desc" entry per package.
func WriteSync(w io.Writer, descs []models.Description, compression scanner.Compression) error {
	cw, err := newCompressor(w, compression)
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if !closed {
			cw.Close()
		}
	}()

	tw := tar.NewWriter(cw)
	for i := range descs {
		d := &descs[i]
		content := desc.Format(d)

		dirName := fmt.Sprintf("%s-%s/", d.Name, d.Version)
		err := tw.WriteHeader(&tar.Header{
			Name:     dirName,
			Mode:     0755,
			Typeflag: tar.TypeDir,
		})
		if err != nil {
			return err
		}

		err = tw.WriteHeader(&tar.Header{
			Name:     dirName + DescFile,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		})
		if err != nil {
			return err
		}
		if _, err := tw.Write(content); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	closed = true
	return cw.Close()
}
