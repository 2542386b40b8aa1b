package difftool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/imgdiff/pkg/models"
)

func TestAvailableMissingBinary(t *testing.T) {
	d := NewDiffoscope("definitely-not-installed-anywhere")
	err := d.Available(context.Background())
	require.Error(t, err)

	var toolErr *models.ExternalToolError
	assert.ErrorAs(t, err, &toolErr)
}

func TestDiffCapturesOutput(t *testing.T) {
	// echo stands in for the real tool: it prints its arguments and
	// exits zero, which exercises the capture path
	d := NewDiffoscope("echo")

	out, err := d.Diff(context.Background(), "/left/a.txt", "/right/a.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "/left/a.txt")
	assert.Contains(t, out, "/right/a.txt")
}

func TestDiffNonZeroExitStillYieldsOutput(t *testing.T) {
	// false exits 1 without output, like diffoscope on differing input
	d := NewDiffoscope("false")

	out, err := d.Diff(context.Background(), "a", "b")
	assert.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDiffSpawnFailure(t *testing.T) {
	d := NewDiffoscope("definitely-not-installed-anywhere")

	_, err := d.Diff(context.Background(), "a", "b")
	require.Error(t, err)

	var toolErr *models.ExternalToolError
	assert.ErrorAs(t, err, &toolErr)
}

func TestDefaultBinaryName(t *testing.T) {
	d := NewDiffoscope("")
	assert.Equal(t, "diffoscope", d.binary)
}
