// Package history archives run summaries in a local SQLite database so
// consecutive regression runs against the endpoint can be compared.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/preprintwatch/kgx3-endpoint-tests/report"
	"github.com/preprintwatch/kgx3-endpoint-tests/runner"
)

const sqliteTimestampFormat = "2006-01-02 15:04:05"

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("could not open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not connect to history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		endpoint_url TEXT NOT NULL,
		total INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		min_ms INTEGER NOT NULL,
		max_ms INTEGER NOT NULL,
		avg_ms INTEGER NOT NULL,
		rps REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_cases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		row_num INTEGER NOT NULL,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		passed INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_run_cases_run_id ON run_cases(run_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("could not initialize history schema: %w", err)
	}
	return nil
}

// RunRecord is one archived run summary.
type RunRecord struct {
	ID          int64
	StartedAt   time.Time
	EndpointURL string
	Total       int
	Passed      int
	Failed      int
	Skipped     int
	Duration    time.Duration
	RPS         float64
}

// SaveRun archives a run summary and its per-case outcomes, returning the
// new run's row ID.
func (s *Store) SaveRun(started time.Time, summary report.Summary, outcomes []runner.Outcome) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, endpoint_url, total, passed, failed, skipped,
			duration_ms, min_ms, max_ms, avg_ms, rps)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		started.Local().Format(sqliteTimestampFormat),
		summary.EndpointURL,
		summary.TotalRequests,
		summary.Passed,
		summary.Failed,
		summary.Skipped,
		summary.TotalDuration.Milliseconds(),
		summary.MinResponseTime.Milliseconds(),
		summary.MaxResponseTime.Milliseconds(),
		summary.AvgResponseTime.Milliseconds(),
		summary.RequestsPerSecond,
	)
	if err != nil {
		return 0, fmt.Errorf("could not archive run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("could not get archived run ID: %w", err)
	}

	for _, o := range outcomes {
		_, err := s.db.Exec(
			`INSERT INTO run_cases (run_id, row_num, name, status, passed, skipped, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, o.Row, o.Name, o.Status, o.Passed, o.Skipped, o.Elapsed.Milliseconds(),
		)
		if err != nil {
			return 0, fmt.Errorf("could not archive case %q: %w", o.Name, err)
		}
	}

	return runID, nil
}

// RecentRuns returns up to limit archived runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, endpoint_url, total, passed, failed, skipped, duration_ms, rps
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not query run history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var startedAt string
		var durationMS int64
		if err := rows.Scan(&r.ID, &startedAt, &r.EndpointURL, &r.Total, &r.Passed,
			&r.Failed, &r.Skipped, &durationMS, &r.RPS); err != nil {
			return nil, fmt.Errorf("could not read run history row: %w", err)
		}
		r.StartedAt, _ = time.ParseInLocation(sqliteTimestampFormat, startedAt, time.Local)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, r)
	}
	return records, rows.Err()
}
