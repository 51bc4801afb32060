// Package report persists the aggregate run report as a dated JSON
// artifact on disk.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

// Writer saves run reports under a configured directory.
type Writer struct {
	Dir string
}

// NewWriter creates a Writer.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Write stores the report verbatim as cot_report_YYYYMMDD.json and
// returns the path written. A report for the same date is overwritten.
func (w *Writer) Write(r *model.RunReport) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(w.Dir, fmt.Sprintf("cot_report_%s.json", r.Timestamp.Format("20060102")))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
