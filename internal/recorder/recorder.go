package recorder

import "github.com/PureGit90/COT-Monitor/internal/model"

// Recorder persists run history for later analysis.
type Recorder interface {
	// RecordRun stores a full run report. delivered reflects whether
	// webhook delivery succeeded; analysis and delivery outcomes are
	// tracked independently.
	RecordRun(r *model.RunReport, delivered bool) error
	Close() error
}
