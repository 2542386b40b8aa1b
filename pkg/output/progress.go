package output

import (
	"os"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"
)

// ShouldShowProgress reports whether a progress bar makes sense:
// progress must be enabled and stderr must be a terminal, so the bar
// never garbles redirected output.
func ShouldShowProgress(enabled bool) bool {
	return enabled && term.IsTerminal(int(os.Stderr.Fd()))
}

// ProgressBar tracks files processed during reconciliation.
type ProgressBar struct {
	bar *pb.ProgressBar
}

// NewProgressBar starts a bar over the given file total on stderr.
func NewProgressBar(total int) *ProgressBar {
	bar := pb.New(total)
	bar.SetWriter(os.Stderr)
	bar.Set(pb.Bytes, false)
	bar.Start()
	return &ProgressBar{bar: bar}
}

// Update moves the bar to the current position.
func (p *ProgressBar) Update(current, total int) {
	p.bar.SetCurrent(int64(current))
}

// Finish completes and clears the bar.
func (p *ProgressBar) Finish() {
	p.bar.Finish()
}
