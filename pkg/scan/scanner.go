package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sdejongh/imgdiff/pkg/logging"
	"github.com/sdejongh/imgdiff/pkg/models"
)

// Scanner walks a rooted directory tree and produces a normalized
// TreeListing: relative directory path to the set of file names it
// directly contains, each resolved to its absolute path.
//
// Symlinks are recorded as leaf entries in their containing directory
// and never followed; whether a symlink "matches" is decided at
// comparison time, not scan time.
type Scanner struct {
	ordered bool
	logger  logging.Logger
}

// NewScanner creates a scanner. When ordered is true, directories and
// files are enumerated in lexicographic order, making the listing (and
// any report derived from it) fully deterministic. Otherwise traversal
// follows native filesystem enumeration order, which is not guaranteed
// stable across runs or platforms.
func NewScanner(ordered bool, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{ordered: ordered, logger: logger}
}

// Scan enumerates every regular file, symlink, and subdirectory under
// root. An unreadable root is fatal and surfaces as a ScanError;
// unreadable subdirectories are logged and skipped, matching the
// behavior of a plain recursive walk.
func (s *Scanner) Scan(ctx context.Context, root string) (*models.TreeListing, error) {
	// Strip a trailing separator so relative-path computation is stable
	if len(root) > 1 {
		root = strings.TrimSuffix(root, string(os.PathSeparator))
	}

	listing := models.NewTreeListing(root)

	if err := s.walk(ctx, listing, root, root, true); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "tree scanned", logging.Fields{
		"root":  root,
		"dirs":  listing.DirCount(),
		"files": listing.FileCount(),
	})

	return listing, nil
}

func (s *Scanner) walk(ctx context.Context, listing *models.TreeListing, root, dir string, isRoot bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := s.readDir(dir)
	if err != nil {
		if isRoot {
			return &models.ScanError{Root: root, Err: err}
		}
		s.logger.Warn(ctx, "skipping unreadable directory", logging.Fields{
			"dir":   dir,
			"error": err.Error(),
		})
		return nil
	}

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return &models.ScanError{Root: root, Err: err}
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			subdirs = append(subdirs, entry.Name())
			continue
		}
		// Regular files and symlinks are both leaf entries here
		listing.AddFile(rel, entry.Name(), filepath.Join(dir, entry.Name()))
	}

	for _, name := range subdirs {
		if err := s.walk(ctx, listing, root, filepath.Join(dir, name), false); err != nil {
			return err
		}
	}

	return nil
}

// readDir enumerates a single directory. os.ReadDir always sorts, so
// native-order mode reads entries through the file handle directly.
func (s *Scanner) readDir(dir string) ([]fs.DirEntry, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	if s.ordered {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name() < entries[j].Name()
		})
	}

	return entries, nil
}
