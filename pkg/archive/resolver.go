package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mholt/archives"

	"github.com/sdejongh/imgdiff/pkg/logging"
	"github.com/sdejongh/imgdiff/pkg/models"
)

// Source is a filesystem root ready for scanning: either the input
// argument itself (when it was already a directory) or a scratch
// extraction of it (when it was a recognized archive).
type Source struct {
	// Input is the original argument, used verbatim in report lines
	Input string

	// Root is the directory to scan
	Root string

	scratch string
}

// Close removes the scratch extraction directory, if any. Safe to call
// on all exit paths, including after a failed run.
func (s *Source) Close() error {
	if s.scratch == "" {
		return nil
	}
	return os.RemoveAll(s.scratch)
}

// Resolver turns an input argument (directory or archive) into a
// scannable filesystem root. Recognized archive formats are whatever
// the archives library can identify and extract (tar with the usual
// compressions, zip, ...), so support is a declared extensible list
// rather than a single hardcoded variant.
type Resolver struct {
	logger logging.Logger
}

// NewResolver creates a resolver.
func NewResolver(logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Resolver{logger: logger}
}

// Resolve yields a Source for the input. Any failure here is fatal for
// the run: an unreadable input, an unrecognized format, or an
// extraction error all surface as ExtractionError.
func (r *Resolver) Resolve(ctx context.Context, input string) (*Source, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, &models.ExtractionError{Input: input, Err: err}
	}

	if info.IsDir() {
		return &Source{Input: input, Root: input}, nil
	}

	file, err := os.Open(input)
	if err != nil {
		return nil, &models.ExtractionError{Input: input, Err: err}
	}
	defer file.Close()

	format, stream, err := archives.Identify(ctx, input, file)
	if err != nil {
		return nil, &models.ExtractionError{
			Input: input,
			Err:   fmt.Errorf("not a directory and not a recognized archive: %w", err),
		}
	}

	extractor, ok := format.(archives.Extractor)
	if !ok {
		return nil, &models.ExtractionError{
			Input: input,
			Err:   fmt.Errorf("format %s is not extractable", format.Extension()),
		}
	}

	scratch, err := os.MkdirTemp("", "imgdiff-*")
	if err != nil {
		return nil, &models.ExtractionError{Input: input, Err: err}
	}

	r.logger.Info(ctx, "extracting archive", logging.Fields{
		"input":   input,
		"format":  format.Extension(),
		"scratch": scratch,
	})

	if err := extractor.Extract(ctx, stream, extractHandler(scratch)); err != nil {
		os.RemoveAll(scratch)
		return nil, &models.ExtractionError{Input: input, Err: err}
	}

	return &Source{Input: input, Root: scratch, scratch: scratch}, nil
}

// extractHandler writes one archive entry under dest, re-creating
// directories, symlinks, and regular files.
func extractHandler(dest string) archives.FileHandler {
	return func(ctx context.Context, info archives.FileInfo) error {
		target, err := entryPath(dest, info.NameInArchive)
		if err != nil {
			return err
		}

		switch {
		case info.IsDir():
			return os.MkdirAll(target, 0o755)

		case info.LinkTarget != "":
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			return os.Symlink(info.LinkTarget, target)

		default:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			src, err := info.Open()
			if err != nil {
				return err
			}
			defer src.Close()

			mode := info.Mode().Perm()
			if mode == 0 {
				mode = 0o644
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
			if err != nil {
				return err
			}
			if _, err := io.Copy(out, src); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		}
	}
}

// entryPath resolves an archive member name under dest, rejecting
// names that would escape the extraction directory.
func entryPath(dest, name string) (string, error) {
	name = filepath.Clean(filepath.FromSlash(name))
	if name == "." {
		return dest, nil
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("archive entry escapes extraction directory: %s", name)
	}
	return filepath.Join(dest, name), nil
}
