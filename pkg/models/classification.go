package models

// Result represents the outcome of comparing one file present in both trees
type Result string

const (
	// ResultMatch indicates both sides are byte-identical, or are
	// symlinks with identical targets
	ResultMatch Result = "match"
	// ResultMismatch indicates both sides exist but differ in content,
	// link target, or kind (symlink vs regular file)
	ResultMismatch Result = "mismatch"
	// ResultSourceOnly indicates the file exists only in the source tree
	ResultSourceOnly Result = "source_only"
	// ResultDestOnly indicates the file exists only in the destination tree
	ResultDestOnly Result = "dest_only"
	// ResultError indicates the comparison itself failed and the file
	// could not be classified as match or mismatch
	ResultError Result = "error"
)

// DiffKind categorizes a single reported difference event
type DiffKind string

const (
	// KindFileMismatch is a file present on both sides with differing content
	KindFileMismatch DiffKind = "file_mismatch"
	// KindFileSourceOnly is a file present in source, absent in destination
	KindFileSourceOnly DiffKind = "file_source_only"
	// KindFileDestOnly is a file present in destination, absent in source
	KindFileDestOnly DiffKind = "file_dest_only"
	// KindDirSourceOnly is a directory present in source, absent in destination
	KindDirSourceOnly DiffKind = "dir_source_only"
	// KindDirDestOnly is a directory present in destination, absent in source
	KindDirDestOnly DiffKind = "dir_dest_only"
	// KindCompareError is a file that could not be compared
	KindCompareError DiffKind = "compare_error"
	// KindDiffToolError is a failed external diff invocation
	KindDiffToolError DiffKind = "difftool_error"
)

// Difference is one classified diff event in report order
type Difference struct {
	// Kind is the event category
	Kind DiffKind

	// RelativePath is the file or directory path relative to its tree root
	RelativePath string

	// FileCount is the number of files a missing directory carried.
	// Only set for directory events.
	FileCount int

	// Reason explains why the event was emitted (kind mismatch,
	// differing targets, permission error, ...)
	Reason string

	// DiffOutput is captured external deep-diff output, if any
	DiffOutput string
}
