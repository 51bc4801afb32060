package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

func testReport() *model.RunReport {
	return &model.RunReport{
		Timestamp:        time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC),
		WeekEnding:       "2024-03-15",
		TotalInstruments: 2,
		ActiveSignals:    1,
		Instruments: []model.InstrumentReport{
			{
				Code: "NQ", Name: "Nasdaq 100",
				Status:    string(model.BullishDivergence),
				LatestNet: -9000, LatestLong: 41000, LatestShort: 50000,
				LatestDate: "2024-03-12",
				Signals: []model.Signal{
					{Kind: model.BullishDivergence, Code: "NQ", LatestNet: -9000, ReferenceNet: -15000, WindowWeeks: 52},
				},
			},
			{Code: "BTC", Name: "Bitcoin", Status: model.StatusNeutral, Signals: []model.Signal{}},
		},
	}
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRun(testReport(), true))

	var runs, instruments, signals, delivered int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM instrument_reports`).Scan(&instruments))
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM instrument_signals`).Scan(&signals))
	require.NoError(t, r.db.QueryRow(`SELECT delivered FROM runs LIMIT 1`).Scan(&delivered))

	assert.Equal(t, 1, runs)
	assert.Equal(t, 2, instruments)
	assert.Equal(t, 1, signals)
	assert.Equal(t, 1, delivered)
}

func TestSQLiteRecorder_DeliveryFailureRecorded(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordRun(testReport(), false))

	var delivered int
	require.NoError(t, r.db.QueryRow(`SELECT delivered FROM runs LIMIT 1`).Scan(&delivered))
	assert.Equal(t, 0, delivered)
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	r, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, r.RecordRun(testReport(), true))
	require.NoError(t, r.Close())

	r2, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer r2.Close()

	var runs int
	require.NoError(t, r2.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 1, runs)
}
