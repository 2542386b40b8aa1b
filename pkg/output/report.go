package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// OpenOutput resolves the report destination: the given file, or
// stdout when the path is empty. The returned closer is a no-op for
// stdout.
func OpenOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return file, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Renderer writes a diff report as human-readable lines, one per
// difference event, in report order.
type Renderer struct {
	writer   io.Writer
	colorize bool

	mismatch *color.Color
	missing  *color.Color
	errLine  *color.Color
}

// NewRenderer creates a renderer. Colors are applied only when
// colorize is true (typically: writing to a terminal).
func NewRenderer(writer io.Writer, colorize bool) *Renderer {
	return &Renderer{
		writer:   writer,
		colorize: colorize,
		mismatch: color.New(color.FgRed),
		missing:  color.New(color.FgYellow),
		errLine:  color.New(color.FgMagenta),
	}
}

// Render writes every difference line of the report.
func (r *Renderer) Render(report *models.DiffReport) error {
	for _, diff := range report.Differences {
		if err := r.renderDifference(report, diff); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderDifference(report *models.DiffReport, diff models.Difference) error {
	var line string

	switch diff.Kind {
	case models.KindFileMismatch:
		line = fmt.Sprintf("File mismatch: '%s' from %s and %s",
			diff.RelativePath, report.SourcePath, report.DestPath)
		line = r.paint(r.mismatch, line)

	case models.KindFileSourceOnly:
		line = fmt.Sprintf("Missing file: '%s' from %s not found in %s",
			diff.RelativePath, report.SourcePath, report.DestPath)
		line = r.paint(r.missing, line)

	case models.KindFileDestOnly:
		line = fmt.Sprintf("Missing file: '%s' from %s not found in %s",
			diff.RelativePath, report.DestPath, report.SourcePath)
		line = r.paint(r.missing, line)

	case models.KindDirSourceOnly:
		line = fmt.Sprintf("Missing directory (with %d files): '%s' from %s not found in %s",
			diff.FileCount, diff.RelativePath, report.SourcePath, report.DestPath)
		line = r.paint(r.missing, line)

	case models.KindDirDestOnly:
		line = fmt.Sprintf("Missing directory (with %d files): '%s' from %s not found in %s",
			diff.FileCount, diff.RelativePath, report.DestPath, report.SourcePath)
		line = r.paint(r.missing, line)

	case models.KindCompareError:
		line = fmt.Sprintf("Cannot compare '%s': %s", diff.RelativePath, diff.Reason)
		line = r.paint(r.errLine, line)

	case models.KindDiffToolError:
		line = fmt.Sprintf("Deep diff failed for '%s': %s", diff.RelativePath, diff.Reason)
		line = r.paint(r.errLine, line)

	default:
		return nil
	}

	if _, err := fmt.Fprintln(r.writer, line); err != nil {
		return err
	}

	if diff.DiffOutput != "" {
		if _, err := fmt.Fprintf(r.writer, "diffoscope output:\n%s", diff.DiffOutput); err != nil {
			return err
		}
	}

	return nil
}

func (r *Renderer) paint(c *color.Color, line string) string {
	if !r.colorize {
		return line
	}
	return c.Sprint(line)
}
