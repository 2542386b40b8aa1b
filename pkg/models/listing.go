package models

// TreeListing is a normalized listing of one tree: a mapping from
// relative directory path to the files that directory directly contains,
// each file name resolved to its absolute path. The tree root is keyed
// by ".". A directory appears in the listing only if it directly
// contains at least one file or symlink.
//
// The listing preserves the order in which the scanner recorded
// directories and files, so iteration is deterministic whenever the
// scan itself was deterministic. It is built once by the scanner and
// must not be modified afterwards.
type TreeListing struct {
	root  string
	dirs  map[string]*dirEntry
	order []string
}

type dirEntry struct {
	files map[string]string
	order []string
}

// NewTreeListing creates an empty listing rooted at root.
func NewTreeListing(root string) *TreeListing {
	return &TreeListing{
		root: root,
		dirs: make(map[string]*dirEntry),
	}
}

// AddFile records a file under the given relative directory. The
// directory entry is created on first use. Duplicate names within a
// directory are impossible by filesystem construction; a duplicate add
// overwrites the recorded path.
func (l *TreeListing) AddFile(dir, name, absPath string) {
	entry, ok := l.dirs[dir]
	if !ok {
		entry = &dirEntry{files: make(map[string]string)}
		l.dirs[dir] = entry
		l.order = append(l.order, dir)
	}
	if _, exists := entry.files[name]; !exists {
		entry.order = append(entry.order, name)
	}
	entry.files[name] = absPath
}

// Root returns the root path the listing was built from.
func (l *TreeListing) Root() string {
	return l.root
}

// Dirs returns the relative directory paths in recorded order.
func (l *TreeListing) Dirs() []string {
	return l.order
}

// HasDir reports whether the relative directory path is present.
func (l *TreeListing) HasDir(dir string) bool {
	_, ok := l.dirs[dir]
	return ok
}

// Files returns the file names of a directory in recorded order.
// It returns nil for directories not in the listing.
func (l *TreeListing) Files(dir string) []string {
	entry, ok := l.dirs[dir]
	if !ok {
		return nil
	}
	return entry.order
}

// HasFile reports whether the named file exists in the directory entry.
func (l *TreeListing) HasFile(dir, name string) bool {
	entry, ok := l.dirs[dir]
	if !ok {
		return false
	}
	_, ok = entry.files[name]
	return ok
}

// Path returns the absolute path recorded for a file, or "" if the
// file is not in the listing.
func (l *TreeListing) Path(dir, name string) string {
	entry, ok := l.dirs[dir]
	if !ok {
		return ""
	}
	return entry.files[name]
}

// DirFileCount returns the number of files directly inside a directory.
func (l *TreeListing) DirFileCount(dir string) int {
	entry, ok := l.dirs[dir]
	if !ok {
		return 0
	}
	return len(entry.order)
}

// FileCount returns the total number of files across all directories.
func (l *TreeListing) FileCount() int {
	total := 0
	for _, entry := range l.dirs {
		total += len(entry.order)
	}
	return total
}

// DirCount returns the number of directory entries in the listing.
func (l *TreeListing) DirCount() int {
	return len(l.order)
}
