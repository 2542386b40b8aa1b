package compare

import (
	"context"
	"fmt"
	"os"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// Classification is the outcome of comparing one file present in both trees
type Classification struct {
	Result models.Result
	Reason string
	Err    error
}

// Classifier decides whether two files at the same relative path match.
// Symlinks are compared by link target, never by content: if either
// side is a symlink, both must be symlinks pointing at the identical
// target string, and content hashing is not invoked. Regular files are
// compared by content fingerprint.
type Classifier struct {
	fingerprinter Fingerprinter
}

// NewClassifier creates a classifier using the given fingerprinter.
func NewClassifier(fingerprinter Fingerprinter) *Classifier {
	return &Classifier{fingerprinter: fingerprinter}
}

// ClassifyPair compares the files at sourcePath and destPath. A failure
// to inspect or hash either side yields ResultError with the underlying
// error; the file is then neither a match nor a mismatch.
func (c *Classifier) ClassifyPair(ctx context.Context, sourcePath, destPath string) Classification {
	sourceInfo, err := os.Lstat(sourcePath)
	if err != nil {
		return Classification{Result: models.ResultError, Reason: "cannot stat source file", Err: err}
	}
	destInfo, err := os.Lstat(destPath)
	if err != nil {
		return Classification{Result: models.ResultError, Reason: "cannot stat destination file", Err: err}
	}

	sourceIsLink := sourceInfo.Mode()&os.ModeSymlink != 0
	destIsLink := destInfo.Mode()&os.ModeSymlink != 0

	if sourceIsLink || destIsLink {
		// Kind mismatch overrides content equality
		if !sourceIsLink || !destIsLink {
			return Classification{Result: models.ResultMismatch, Reason: "file kind differs (symlink vs regular file)"}
		}

		sourceTarget, err := os.Readlink(sourcePath)
		if err != nil {
			return Classification{Result: models.ResultError, Reason: "cannot read source link target", Err: err}
		}
		destTarget, err := os.Readlink(destPath)
		if err != nil {
			return Classification{Result: models.ResultError, Reason: "cannot read destination link target", Err: err}
		}

		if sourceTarget != destTarget {
			return Classification{
				Result: models.ResultMismatch,
				Reason: fmt.Sprintf("link targets differ (%s vs %s)", sourceTarget, destTarget),
			}
		}
		return Classification{Result: models.ResultMatch, Reason: "link targets match"}
	}

	sourceSum, err := c.fingerprinter.Fingerprint(ctx, sourcePath)
	if err != nil {
		return Classification{Result: models.ResultError, Reason: "cannot fingerprint source file", Err: err}
	}
	destSum, err := c.fingerprinter.Fingerprint(ctx, destPath)
	if err != nil {
		return Classification{Result: models.ResultError, Reason: "cannot fingerprint destination file", Err: err}
	}

	if sourceSum != destSum {
		return Classification{Result: models.ResultMismatch, Reason: "content fingerprints differ"}
	}
	return Classification{Result: models.ResultMatch, Reason: "content fingerprints match"}
}
