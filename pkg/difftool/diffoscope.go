package difftool

import (
	"context"
	"errors"
	"os/exec"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// Differ is the injected deep-diff capability. It is only invoked for
// file pairs already classified as mismatched; its output is appended
// to the report as extra diagnostics.
type Differ interface {
	// Available probes for the tool. Called once before comparison
	// begins; an error here is fatal for the run.
	Available(ctx context.Context) error

	// Diff runs the tool on two mismatched files and returns its
	// captured output.
	Diff(ctx context.Context, sourcePath, destPath string) (string, error)
}

// Diffoscope invokes the diffoscope binary for deep content diffs.
type Diffoscope struct {
	binary string
}

// NewDiffoscope creates a diffoscope invoker. An empty binary name
// selects "diffoscope" from PATH.
func NewDiffoscope(binary string) *Diffoscope {
	if binary == "" {
		binary = "diffoscope"
	}
	return &Diffoscope{binary: binary}
}

// Available checks that the binary exists and responds to --version.
func (d *Diffoscope) Available(ctx context.Context) error {
	if _, err := exec.LookPath(d.binary); err != nil {
		return &models.ExternalToolError{Tool: d.binary, Err: err}
	}

	cmd := exec.CommandContext(ctx, d.binary, "--version")
	if out, err := cmd.CombinedOutput(); err != nil {
		return &models.ExternalToolError{
			Tool: d.binary,
			Err:  errors.New("--version failed: " + string(out)),
		}
	}
	return nil
}

// Diff runs the tool on the two paths and captures combined output.
// diffoscope exits non-zero whenever its inputs differ, which is always
// the case when we call it, so a plain exit error still yields output;
// only spawn or signal failures are reported as tool errors.
func (d *Diffoscope) Diff(ctx context.Context, sourcePath, destPath string) (string, error) {
	cmd := exec.CommandContext(ctx, d.binary, sourcePath, destPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", &models.ExternalToolError{Tool: d.binary, Err: err}
		}
	}
	return string(out), nil
}
