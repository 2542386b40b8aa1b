package models

import (
	"time"
)

// Statistics holds the accumulated comparison counters. Counters are
// only ever incremented during a reconciliation pass; derived values
// (totals, percentages) are computed from them at the end of the run.
//
// Direction convention: SourceOnlyFiles counts files present in the
// source tree (first image) with no counterpart in the destination
// tree (second image), and mirror-wise for DestOnlyFiles. Files inside
// a missing directory are rolled into the same counters without
// per-file inspection.
type Statistics struct {
	// Matched counts files identical on both sides
	Matched int

	// Mismatched counts files present on both sides that differ
	Mismatched int

	// SourceOnlyFiles counts files from source not found in destination
	SourceOnlyFiles int

	// DestOnlyFiles counts files from destination not found in source
	DestOnlyFiles int

	// SourceOnlyDirs counts directories from source not found in destination
	SourceOnlyDirs int

	// DestOnlyDirs counts directories from destination not found in source
	DestOnlyDirs int

	// Errored counts files whose comparison failed and were classified
	// as neither match nor mismatch
	Errored int
}

// TotalCompared returns the total number of files that took part in the
// comparison: matches, mismatches, and files missing from either side.
func (s *Statistics) TotalCompared() int {
	return s.Matched + s.Mismatched + s.SourceOnlyFiles + s.DestOnlyFiles
}

// MissingTotal returns the combined missing-file count of both directions.
func (s *Statistics) MissingTotal() int {
	return s.SourceOnlyFiles + s.DestOnlyFiles
}

// Percent returns count as a percentage of the compared-file total.
// A zero total yields 0 rather than a division by zero.
func (s *Statistics) Percent(count int) float64 {
	total := s.TotalCompared()
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// Status represents the overall outcome of a comparison run
type Status string

const (
	// StatusClean indicates no differences were found
	StatusClean Status = "clean"
	// StatusDiff indicates at least one mismatch, missing file, or
	// missing directory was found
	StatusDiff Status = "diff"
	// StatusFailed indicates the run aborted on a fatal error
	StatusFailed Status = "failed"
)

// ExitCode returns the process exit code for the status
func (s Status) ExitCode() int {
	switch s {
	case StatusClean:
		return 0
	default:
		return 1
	}
}

// DiffReport represents the results of one comparison run
type DiffReport struct {
	// ReportID uniquely identifies the run
	ReportID string

	// SourcePath and DestPath are the user-supplied image arguments
	// (directory or archive), used verbatim in report lines
	SourcePath string
	DestPath   string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Differences in report order: source directory order first, then
	// leftover destination directories
	Differences []Difference

	// Stats are the accumulated counters
	Stats Statistics

	// Status is the overall outcome
	Status Status
}
