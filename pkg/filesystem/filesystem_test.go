// pkg/filesystem/filesystem_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Temp directories, afero MemMapFs
// PURPOSE: Test that both FS implementations honor the same contract

package filesystem_test

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stagehand/pkg/filesystem"
)

func TestOSFileRoundTrip(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	require.NoError(t, fsys.MkdirAll(filepath.Join(dir, "a/b"), 0755))
	path := filepath.Join(dir, "a/b/file.txt")
	require.NoError(t, fsys.WriteFile(path, []byte("content"), 0644))

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestOSSymlink(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()

	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link")
	require.NoError(t, fsys.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fsys.Symlink(target, link))

	got, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink)

	// Creating a link where a path is already occupied must fail.
	err = fsys.Symlink(target, link)
	require.Error(t, err)
}

func TestAferoSymlinkSimulation(t *testing.T) {
	// MemMapFs has no native symlinks; the wrapper simulates them so
	// action tests can run hermetically.
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fsys.Symlink("/opt/config", "/etc/link"))

	got, err := fsys.Readlink("/etc/link")
	require.NoError(t, err)
	assert.Equal(t, "/opt/config", got)

	err = fsys.Symlink("/other", "/etc/link")
	require.Error(t, err)
}

func TestAferoReadFileRejectsDirectory(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	require.NoError(t, fsys.MkdirAll("/dir", 0755))

	_, err := fsys.ReadFile("/dir")
	require.Error(t, err)
}
