package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/PureGit90/COT-Monitor/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the monitor writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			week_ending       TEXT,
			total_instruments INTEGER,
			active_signals    INTEGER,
			delivered         INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS instrument_reports (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id       INTEGER NOT NULL,
			code         TEXT,
			name         TEXT,
			status       TEXT,
			latest_net   INTEGER,
			latest_long  INTEGER,
			latest_short INTEGER,
			latest_date  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_instrument_run ON instrument_reports(run_id)`,

		`CREATE TABLE IF NOT EXISTS instrument_signals (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			code          TEXT,
			kind          TEXT,
			latest_net    INTEGER,
			reference_net INTEGER,
			window_weeks  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_run ON instrument_signals(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(report *model.RunReport, delivered bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deliveredFlag := 0
	if delivered {
		deliveredFlag = 1
	}

	res, err := r.db.Exec(`INSERT INTO runs
		(timestamp, week_ending, total_instruments, active_signals, delivered)
		VALUES (?,?,?,?,?)`,
		report.Timestamp.Unix(), report.WeekEnding,
		report.TotalInstruments, report.ActiveSignals, deliveredFlag,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for _, ir := range report.Instruments {
		if _, err := r.db.Exec(`INSERT INTO instrument_reports
			(run_id, code, name, status, latest_net, latest_long, latest_short, latest_date)
			VALUES (?,?,?,?,?,?,?,?)`,
			runID, ir.Code, ir.Name, ir.Status,
			ir.LatestNet, ir.LatestLong, ir.LatestShort, ir.LatestDate,
		); err != nil {
			return fmt.Errorf("insert instrument %s: %w", ir.Code, err)
		}
		for _, sig := range ir.Signals {
			if _, err := r.db.Exec(`INSERT INTO instrument_signals
				(run_id, code, kind, latest_net, reference_net, window_weeks)
				VALUES (?,?,?,?,?,?)`,
				runID, sig.Code, string(sig.Kind),
				sig.LatestNet, sig.ReferenceNet, sig.WindowWeeks,
			); err != nil {
				return fmt.Errorf("insert signal %s/%s: %w", sig.Code, sig.Kind, err)
			}
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
