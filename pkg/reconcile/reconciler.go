package reconcile

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/imgdiff/pkg/compare"
	"github.com/sdejongh/imgdiff/pkg/difftool"
	"github.com/sdejongh/imgdiff/pkg/logging"
	"github.com/sdejongh/imgdiff/pkg/models"
)

// Progress is called after each source-side file is classified.
type Progress func(current, total int)

// Reconciler consumes two normalized tree listings and produces an
// ordered sequence of classified diff events plus aggregate counters.
// Neither listing is mutated: leftover detection is done with
// membership checks over the immutable listings rather than by
// consuming a mutable copy.
type Reconciler struct {
	classifier *compare.Classifier
	logger     logging.Logger

	differ   difftool.Differ
	progress Progress

	sourceLabel string
	destLabel   string
}

// New creates a reconciler around the given classifier.
func New(classifier *compare.Classifier, logger logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Reconciler{classifier: classifier, logger: logger}
}

// SetDiffer enables external deep-diff invocation on mismatched pairs.
func (r *Reconciler) SetDiffer(differ difftool.Differ) {
	r.differ = differ
}

// SetProgress installs a progress callback.
func (r *Reconciler) SetProgress(progress Progress) {
	r.progress = progress
}

// SetLabels overrides the tree labels used in the report. Defaults are
// the listing roots; callers comparing extracted archives pass the
// original archive arguments instead.
func (r *Reconciler) SetLabels(source, dest string) {
	r.sourceLabel = source
	r.destLabel = dest
}

// Reconcile compares the two listings and returns the report.
//
// The walk is directory-major and two-pass: every source directory in
// listing order first (classifying its files against the destination
// entry, or reporting the whole directory missing), then every
// destination directory with no source counterpart. Each file present
// in either listing is classified exactly once and each relative
// directory path is visited exactly once. Report order is fully
// deterministic whenever the listings were scanned in sorted mode.
func (r *Reconciler) Reconcile(ctx context.Context, source, dest *models.TreeListing) (*models.DiffReport, error) {
	report := &models.DiffReport{
		ReportID:   uuid.New().String(),
		SourcePath: r.sourceLabel,
		DestPath:   r.destLabel,
		StartTime:  time.Now(),
	}
	if report.SourcePath == "" {
		report.SourcePath = source.Root()
	}
	if report.DestPath == "" {
		report.DestPath = dest.Root()
	}

	total := source.FileCount()
	current := 0

	// Pass one: every directory present in source
	for _, dir := range source.Dirs() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !dest.HasDir(dir) {
			count := source.DirFileCount(dir)
			report.Differences = append(report.Differences, models.Difference{
				Kind:         models.KindDirSourceOnly,
				RelativePath: dir,
				FileCount:    count,
			})
			report.Stats.SourceOnlyDirs++
			report.Stats.SourceOnlyFiles += count
			current += count
			r.reportProgress(current, total)
			continue
		}

		for _, name := range source.Files(dir) {
			rel := filepath.Join(dir, name)

			if !dest.HasFile(dir, name) {
				report.Differences = append(report.Differences, models.Difference{
					Kind:         models.KindFileSourceOnly,
					RelativePath: rel,
				})
				report.Stats.SourceOnlyFiles++
			} else {
				r.classifyPair(ctx, report, source.Path(dir, name), dest.Path(dir, name), rel)
			}

			current++
			r.reportProgress(current, total)
		}

		// Anything in the destination entry with no source counterpart
		for _, name := range dest.Files(dir) {
			if source.HasFile(dir, name) {
				continue
			}
			report.Differences = append(report.Differences, models.Difference{
				Kind:         models.KindFileDestOnly,
				RelativePath: filepath.Join(dir, name),
			})
			report.Stats.DestOnlyFiles++
		}
	}

	// Pass two: destination directories with no source counterpart
	for _, dir := range dest.Dirs() {
		if source.HasDir(dir) {
			continue
		}
		count := dest.DirFileCount(dir)
		report.Differences = append(report.Differences, models.Difference{
			Kind:         models.KindDirDestOnly,
			RelativePath: dir,
			FileCount:    count,
		})
		report.Stats.DestOnlyDirs++
		report.Stats.DestOnlyFiles += count
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
	report.Status = overallStatus(&report.Stats)

	r.logger.Info(ctx, "reconciliation complete", logging.Fields{
		"report_id":  report.ReportID,
		"status":     string(report.Status),
		"matched":    report.Stats.Matched,
		"mismatched": report.Stats.Mismatched,
		"missing":    report.Stats.MissingTotal(),
		"errored":    report.Stats.Errored,
	})

	return report, nil
}

// classifyPair classifies one file present on both sides and records
// the outcome. A comparison failure is reported as an uncomparable
// file: it counts as neither match nor mismatch and does not affect
// the overall status on its own.
func (r *Reconciler) classifyPair(ctx context.Context, report *models.DiffReport, sourcePath, destPath, rel string) {
	c := r.classifier.ClassifyPair(ctx, sourcePath, destPath)

	switch c.Result {
	case models.ResultMatch:
		report.Stats.Matched++

	case models.ResultMismatch:
		diff := models.Difference{
			Kind:         models.KindFileMismatch,
			RelativePath: rel,
			Reason:       c.Reason,
		}
		report.Stats.Mismatched++

		if r.differ != nil {
			out, err := r.differ.Diff(ctx, sourcePath, destPath)
			if err != nil {
				// Tool failure suppresses the extra diagnostics only;
				// the mismatch classification stands
				report.Differences = append(report.Differences, diff, models.Difference{
					Kind:         models.KindDiffToolError,
					RelativePath: rel,
					Reason:       err.Error(),
				})
				r.logger.Warn(ctx, "deep diff failed", logging.Fields{
					"path":  rel,
					"error": err.Error(),
				})
				return
			}
			diff.DiffOutput = out
		}
		report.Differences = append(report.Differences, diff)

	case models.ResultError:
		reason := c.Reason
		if c.Err != nil {
			reason = c.Reason + ": " + c.Err.Error()
		}
		report.Differences = append(report.Differences, models.Difference{
			Kind:         models.KindCompareError,
			RelativePath: rel,
			Reason:       reason,
		})
		report.Stats.Errored++
		r.logger.Warn(ctx, "cannot compare file", logging.Fields{
			"path":   rel,
			"reason": reason,
		})
	}
}

func (r *Reconciler) reportProgress(current, total int) {
	if r.progress != nil {
		r.progress(current, total)
	}
}

// overallStatus is clean only if nothing mismatched and nothing was
// missing in either direction. Comparison errors alone leave the
// status clean.
func overallStatus(stats *models.Statistics) models.Status {
	if stats.Mismatched == 0 &&
		stats.SourceOnlyFiles == 0 && stats.DestOnlyFiles == 0 &&
		stats.SourceOnlyDirs == 0 && stats.DestOnlyDirs == 0 {
		return models.StatusClean
	}
	return models.StatusDiff
}
