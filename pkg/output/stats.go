package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// RenderStats writes the aggregate statistics block, computed once at
// the end of the run. A run that compared zero files renders 0%
// everywhere rather than dividing by zero.
func RenderStats(w io.Writer, report *models.DiffReport) error {
	stats := &report.Stats

	fmt.Fprintln(w, "----------------------STATS----------------------")
	fmt.Fprintf(w, "Total files compared: %d\n", stats.TotalCompared())
	fmt.Fprintf(w, "Matches: %d (%.2f%%)\n", stats.Matched, stats.Percent(stats.Matched))
	fmt.Fprintf(w, "Mismatches: %d (%.2f%%)\n", stats.Mismatched, stats.Percent(stats.Mismatched))
	fmt.Fprintf(w, "Missing: %d (%.2f%%)\n", stats.MissingTotal(), stats.Percent(stats.MissingTotal()))
	if stats.Errored > 0 {
		fmt.Fprintf(w, "Cannot compare: %d\n", stats.Errored)
	}
	fmt.Fprintf(w, "Files from %s missing from %s: %d\n", report.SourcePath, report.DestPath, stats.SourceOnlyFiles)
	fmt.Fprintf(w, "Files from %s missing from %s: %d\n", report.DestPath, report.SourcePath, stats.DestOnlyFiles)
	fmt.Fprintf(w, "Dirs from %s missing from %s: %d\n", report.SourcePath, report.DestPath, stats.SourceOnlyDirs)
	fmt.Fprintf(w, "Dirs from %s missing from %s: %d\n", report.DestPath, report.SourcePath, stats.DestOnlyDirs)

	return nil
}
