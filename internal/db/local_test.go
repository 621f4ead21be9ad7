package db

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ralt/pacquery/internal/models"
)

func minimalDesc(name, version string, extra string) string {
	return "%NAME%\n" + name + "\n\n%VERSION%\n" + version + "\n\n%ARCH%\nx86_64\n\n" + extra
}

// writeLocalPackage creates <root>/local/<name>-<version>/ with desc and files
func writeLocalPackage(t *testing.T, root, dirName, descContent, filesContent string, install bool) {
	t.Helper()
	dir := filepath.Join(root, LocalDir, dirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DescFile), []byte(descContent), 0644))
	if filesContent != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, FilesFile), []byte(filesContent), 0644))
	}
	if install {
		require.NoError(t, os.WriteFile(filepath.Join(dir, InstallFile), []byte("post_install() { :; }\n"), 0644))
	}
}

func writeVersion(t *testing.T, root, version string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, LocalDir), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, LocalDir, VersionFile), []byte(version), 0644))
}

func TestReadLocal(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "9\n")

	writeLocalPackage(t, root, "bash-5.2.026-2",
		minimalDesc("bash", "5.2.026-2", "%DEPENDS%\nreadline\nglibc\n\n%PROVIDES%\nsh\n"),
		"%FILES%\nusr/\nusr/bin/\nusr/bin/bash\n\n%BACKUP%\netc/bash.bashrc\td41d8cd98f00b204e9800998ecf8427e\n",
		true)
	writeLocalPackage(t, root, "readline-8.2.010-1",
		minimalDesc("readline", "8.2.010-1", "%REASON%\n1\n"),
		"%FILES%\nusr/lib/libreadline.so.8\n",
		false)

	// Stray files in the root are ignored
	require.NoError(t, os.WriteFile(filepath.Join(root, LocalDir, "README"), []byte("x"), 0644))

	database, err := ReadLocal(root)
	require.NoError(t, err)
	require.Len(t, database.Packages, 2)
	assert.Empty(t, database.Skipped)
	assert.Equal(t, LocalRepoName, database.Name)

	bash := database.Packages[0]
	assert.Equal(t, "bash", bash.Desc.Name)
	assert.True(t, bash.Desc.InstallScript)
	assert.Equal(t, []string{"usr/", "usr/bin/", "usr/bin/bash"}, bash.Files)
	assert.Equal(t, "sh", bash.Desc.Provides[0].Name)

	readline := database.Packages[1]
	assert.Equal(t, "readline", readline.Desc.Name)
	assert.False(t, readline.Desc.InstallScript)
	assert.Equal(t, models.ReasonDepend, readline.Desc.InstallReason)
	assert.Equal(t, []string{"usr/lib/libreadline.so.8"}, readline.Files)
}

func TestReadLocalVersionMismatch(t *testing.T) {
	for _, marker := range []string{"8", "10\n", "", "nine"} {
		root := t.TempDir()
		writeVersion(t, root, marker)
		// A package directory without a desc file would fail if read
		require.NoError(t, os.MkdirAll(filepath.Join(root, LocalDir, "broken-1-1"), 0755))

		_, err := ReadLocal(root)
		require.Error(t, err, marker)
		assert.True(t, models.IsType(err, models.ErrDBVersion), "marker %q: %v", marker, err)

		var mismatch *models.VersionMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, models.SupportedDBVersion, mismatch.Expected)
	}
}

func TestReadLocalMissingVersionFile(t *testing.T) {
	root := t.TempDir()

	_, err := ReadLocal(root)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrIO))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestReadLocalSkipsMalformedRecords(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "9")

	writeLocalPackage(t, root, "good-1-1", minimalDesc("good", "1-1", ""), "%FILES%\n", false)
	writeLocalPackage(t, root, "noversion-1-1", "%NAME%\nnoversion\n\n%ARCH%\nany\n", "%FILES%\n", false)
	writeLocalPackage(t, root, "badsize-1-1", minimalDesc("badsize", "1-1", "%SIZE%\nlots\n"), "%FILES%\n", false)

	database, err := ReadLocal(root)
	require.NoError(t, err)
	require.Len(t, database.Packages, 1)
	assert.Equal(t, "good", database.Packages[0].Desc.Name)
	assert.Empty(t, database.Packages[0].Files)

	require.Len(t, database.Skipped, 2)
	assert.True(t, models.IsType(database.Skipped[0], models.ErrMalformedField))
	assert.True(t, models.IsType(database.Skipped[1], models.ErrMissingField))
}

func TestReadLocalMissingFilesIsIOError(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "9")
	writeLocalPackage(t, root, "nofiles-1-1", minimalDesc("nofiles", "1-1", ""), "", false)

	_, err := ReadLocal(root)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrIO))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestParseFiles(t *testing.T) {
	files, err := parseFiles(nil)
	require.NoError(t, err)
	assert.Nil(t, files)

	files, err = parseFiles([]byte("%FILES%\n"))
	require.NoError(t, err)
	assert.Nil(t, files)

	files, err = parseFiles([]byte("%FILES%\na\nb\n\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, files)
}

func TestParseFilesOverlongLine(t *testing.T) {
	long := "%FILES%\nusr/bin/a\n" + strings.Repeat("x", maxPathSize+1) + "\n"

	_, err := parseFiles([]byte(long))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestReadLocalOverlongFilesLineIsIOError(t *testing.T) {
	root := t.TempDir()
	writeVersion(t, root, "9")
	writeLocalPackage(t, root, "huge-1-1", minimalDesc("huge", "1-1", ""),
		"%FILES%\n"+strings.Repeat("x", maxPathSize+1)+"\n", false)

	_, err := ReadLocal(root)
	require.Error(t, err)
	assert.True(t, models.IsType(err, models.ErrIO))
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
