package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// writeTarGz builds a small .tar.gz fixture with files and a symlink
func writeTarGz(t *testing.T, path string, files map[string]string, links map[string]string) {
	t.Helper()

	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}))
		_, err := io.WriteString(tw, content)
		require.NoError(t, err)
	}
	for name, target := range links {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeSymlink,
			Linkname: target,
			Mode:     0o777,
		}))
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestResolveDirectoryPassesThrough(t *testing.T) {
	dir := t.TempDir()

	source, err := NewResolver(nil).Resolve(context.Background(), dir)
	require.NoError(t, err)
	defer source.Close()

	assert.Equal(t, dir, source.Input)
	assert.Equal(t, dir, source.Root)

	// Close must not remove a pass-through directory
	require.NoError(t, source.Close())
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestResolveExtractsTarGz(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "image.tar.gz")
	writeTarGz(t, archivePath,
		map[string]string{
			"a.txt":     "hello",
			"sub/b.txt": "world",
		},
		map[string]string{"a.lnk": "a.txt"})

	source, err := NewResolver(nil).Resolve(context.Background(), archivePath)
	require.NoError(t, err)
	defer source.Close()

	assert.Equal(t, archivePath, source.Input)
	assert.NotEqual(t, archivePath, source.Root)

	data, err := os.ReadFile(filepath.Join(source.Root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	data, err = os.ReadFile(filepath.Join(source.Root, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	target, err := os.Readlink(filepath.Join(source.Root, "a.lnk"))
	require.NoError(t, err)
	assert.Equal(t, "a.txt", target)
}

func TestResolveCloseRemovesScratch(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "image.tar.gz")
	writeTarGz(t, archivePath, map[string]string{"a.txt": "x"}, nil)

	source, err := NewResolver(nil).Resolve(context.Background(), archivePath)
	require.NoError(t, err)

	scratch := source.Root
	require.NoError(t, source.Close())

	_, err = os.Stat(scratch)
	assert.True(t, os.IsNotExist(err))
}

func TestResolveMissingInput(t *testing.T) {
	_, err := NewResolver(nil).Resolve(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)

	var extractErr *models.ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestResolveUnrecognizedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-archive.bin")
	require.NoError(t, os.WriteFile(path, []byte("just some bytes"), 0o644))

	_, err := NewResolver(nil).Resolve(context.Background(), path)
	require.Error(t, err)

	var extractErr *models.ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestEntryPathRejectsTraversal(t *testing.T) {
	_, err := entryPath("/scratch", "../escape.txt")
	assert.Error(t, err)

	path, err := entryPath("/scratch", "./inside/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/scratch", "inside", "file.txt"), path)

	path, err = entryPath("/scratch", ".")
	require.NoError(t, err)
	assert.Equal(t, "/scratch", path)
}
