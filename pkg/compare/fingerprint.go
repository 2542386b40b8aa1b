package compare

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// DefaultBlockSize is the read block size used when streaming file
// content into the digest (64 KiB)
const DefaultBlockSize = 64 * 1024

// Fingerprinter computes a content fingerprint for a regular file.
// Two files are considered content-equal iff their fingerprints are equal.
type Fingerprinter interface {
	// Fingerprint returns the hex digest of the file's full content
	Fingerprint(ctx context.Context, path string) (string, error)
}

// SHA256Fingerprinter streams files through SHA-256 in fixed-size
// blocks so memory use is bounded regardless of file size.
//
// On a permission-denied read it grants the current owner read
// permission and retries exactly once; a second failure propagates.
// That retry is the only path on which comparison mutates an input tree.
type SHA256Fingerprinter struct {
	blockSize  int
	bufferPool *sync.Pool
}

// NewSHA256Fingerprinter creates a fingerprinter with the given block
// size. Sizes below 4 KiB fall back to the default.
func NewSHA256Fingerprinter(blockSize int) *SHA256Fingerprinter {
	if blockSize < 4096 {
		blockSize = DefaultBlockSize
	}
	return &SHA256Fingerprinter{
		blockSize: blockSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, blockSize)
				return &buf
			},
		},
	}
}

// Fingerprint computes the SHA-256 digest of the file at path.
func (f *SHA256Fingerprinter) Fingerprint(ctx context.Context, path string) (string, error) {
	sum, err := f.digest(ctx, path)
	if err == nil || !errors.Is(err, fs.ErrPermission) {
		return sum, err
	}

	// One remediation attempt: add u+r and retry. A second permission
	// failure propagates to the caller.
	info, statErr := os.Stat(path)
	if statErr != nil {
		return "", &models.FileAccessError{Path: path, Err: err}
	}
	if chmodErr := os.Chmod(path, info.Mode()|0o400); chmodErr != nil {
		return "", &models.FileAccessError{Path: path, Err: err}
	}

	sum, err = f.digest(ctx, path)
	if err != nil {
		return "", &models.FileAccessError{Path: path, Err: err}
	}
	return sum, nil
}

// digest streams the file into a SHA-256 hash in blockSize chunks.
func (f *SHA256Fingerprinter) digest(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()

	bufPtr := f.bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer f.bufferPool.Put(bufPtr)

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}
