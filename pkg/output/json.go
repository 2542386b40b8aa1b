package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/imgdiff/pkg/models"
)

// JSONDifference is one diff event in the JSON report
type JSONDifference struct {
	Kind         string `json:"kind"`
	RelativePath string `json:"relative_path"`
	FileCount    int    `json:"file_count,omitempty"`
	Reason       string `json:"reason,omitempty"`
	DiffOutput   string `json:"diff_output,omitempty"`
}

// JSONStats mirrors the statistics counters plus derived totals
type JSONStats struct {
	TotalCompared   int     `json:"total_compared"`
	Matched         int     `json:"matched"`
	Mismatched      int     `json:"mismatched"`
	SourceOnlyFiles int     `json:"source_only_files"`
	DestOnlyFiles   int     `json:"dest_only_files"`
	SourceOnlyDirs  int     `json:"source_only_dirs"`
	DestOnlyDirs    int     `json:"dest_only_dirs"`
	Errored         int     `json:"errored"`
	MatchPercent    float64 `json:"match_percent"`
	MismatchPercent float64 `json:"mismatch_percent"`
	MissingPercent  float64 `json:"missing_percent"`
}

// JSONReport is the report envelope for automation and scripting
type JSONReport struct {
	Generated   string           `json:"generated"`
	ReportID    string           `json:"report_id"`
	Source      string           `json:"source"`
	Dest        string           `json:"dest"`
	Status      string           `json:"status"`
	DurationMs  int64            `json:"duration_ms"`
	Stats       JSONStats        `json:"stats"`
	Differences []JSONDifference `json:"differences"`
}

// WriteJSON writes the full report as indented JSON.
func WriteJSON(w io.Writer, report *models.DiffReport) error {
	stats := &report.Stats

	out := JSONReport{
		Generated:  time.Now().Format(time.RFC3339),
		ReportID:   report.ReportID,
		Source:     report.SourcePath,
		Dest:       report.DestPath,
		Status:     string(report.Status),
		DurationMs: report.Duration.Milliseconds(),
		Stats: JSONStats{
			TotalCompared:   stats.TotalCompared(),
			Matched:         stats.Matched,
			Mismatched:      stats.Mismatched,
			SourceOnlyFiles: stats.SourceOnlyFiles,
			DestOnlyFiles:   stats.DestOnlyFiles,
			SourceOnlyDirs:  stats.SourceOnlyDirs,
			DestOnlyDirs:    stats.DestOnlyDirs,
			Errored:         stats.Errored,
			MatchPercent:    stats.Percent(stats.Matched),
			MismatchPercent: stats.Percent(stats.Mismatched),
			MissingPercent:  stats.Percent(stats.MissingTotal()),
		},
		Differences: make([]JSONDifference, 0, len(report.Differences)),
	}

	for _, diff := range report.Differences {
		out.Differences = append(out.Differences, JSONDifference{
			Kind:         string(diff.Kind),
			RelativePath: diff.RelativePath,
			FileCount:    diff.FileCount,
			Reason:       diff.Reason,
			DiffOutput:   diff.DiffOutput,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
