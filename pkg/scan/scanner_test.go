package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/imgdiff/pkg/models"
)

func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestScanRecordsRelativePaths(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt":         "hello",
		"sub/b.txt":     "world",
		"sub/deep/c.go": "package c",
	})

	scanner := NewScanner(true, nil)
	listing, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.True(t, listing.HasFile(".", "a.txt"))
	assert.True(t, listing.HasFile("sub", "b.txt"))
	assert.True(t, listing.HasFile(filepath.Join("sub", "deep"), "c.go"))
	assert.Equal(t, filepath.Join(root, "sub", "b.txt"), listing.Path("sub", "b.txt"))
	assert.Equal(t, 3, listing.FileCount())
}

func TestScanRootIsDot(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "x"})

	scanner := NewScanner(true, nil)
	listing, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"."}, listing.Dirs())
}

func TestScanStripsTrailingSeparator(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "x"})

	scanner := NewScanner(true, nil)
	listing, err := scanner.Scan(context.Background(), root+string(os.PathSeparator))
	require.NoError(t, err)

	assert.Equal(t, root, listing.Root())
	assert.True(t, listing.HasFile(".", "a.txt"))
}

func TestScanOrderedIsDeterministic(t *testing.T) {
	root := buildTree(t, map[string]string{
		"zz.txt":      "1",
		"aa.txt":      "2",
		"mm/one.txt":  "3",
		"bb/two.txt":  "4",
		"bb/five.txt": "5",
	})

	scanner := NewScanner(true, nil)

	first, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)
	second, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, first.Dirs(), second.Dirs())
	for _, dir := range first.Dirs() {
		assert.Equal(t, first.Files(dir), second.Files(dir))
	}

	// Sorted mode yields lexicographic file order within a directory
	assert.Equal(t, []string{"aa.txt", "zz.txt"}, first.Files("."))
	assert.Equal(t, []string{"five.txt", "two.txt"}, first.Files("bb"))
}

func TestScanSymlinkIsLeafEntry(t *testing.T) {
	root := buildTree(t, map[string]string{"real/a.txt": "x"})
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink("a.txt", filepath.Join(root, "real", "a.lnk")))

	scanner := NewScanner(true, nil)
	listing, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	// A symlinked directory is recorded by name, never followed
	assert.True(t, listing.HasFile(".", "linkdir"))
	assert.False(t, listing.HasDir("linkdir"))

	// A symlinked file is a plain leaf entry
	assert.True(t, listing.HasFile("real", "a.lnk"))
}

func TestScanDirWithoutDirectFilesIsAbsent(t *testing.T) {
	root := buildTree(t, map[string]string{"parent/child/a.txt": "x"})

	scanner := NewScanner(true, nil)
	listing, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)

	// "parent" holds only a subdirectory, so it has no listing entry;
	// only directories with direct files are reconciliation keys
	assert.False(t, listing.HasDir("parent"))
	assert.True(t, listing.HasDir(filepath.Join("parent", "child")))
}

func TestScanUnreadableRootIsFatal(t *testing.T) {
	scanner := NewScanner(true, nil)
	_, err := scanner.Scan(context.Background(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)

	var scanErr *models.ScanError
	assert.ErrorAs(t, err, &scanErr)
}

func TestScanCancelledContext(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := NewScanner(true, nil)
	_, err := scanner.Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
