package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists dashboard history to a SQLite database.
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

	// WAL mode so external readers (Grafana etc.) don't block writes.
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
		`CREATE TABLE IF NOT EXISTS fetch_snapshots (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			points        INTEGER,
			span_start    INTEGER,
			span_end      INTEGER,
			current_price REAL,
			current_known INTEGER,
			tier          TEXT,
			stats_min     REAL,
			stats_max     REAL,
			stats_mean    REAL,
			stats_known   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_failures (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			reason    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failure_ts ON fetch_failures(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backlight_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			lit       INTEGER,
			quiet     INTEGER,
			trigger_  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backlight_ts ON backlight_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS daily_summaries (
			day  TEXT PRIMARY KEY,
			min  REAL,
			max  REAL,
			mean REAL
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetch(snap *FetchSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_snapshots
		(timestamp, points, span_start, span_end,
		 current_price, current_known, tier,
		 stats_min, stats_max, stats_mean, stats_known)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		snap.FetchedAt.Unix(), snap.Points,
		snap.SpanStart.Unix(), snap.SpanEnd.Unix(),
		snap.CurrentPrice, boolInt(snap.CurrentKnown), snap.Tier,
		snap.StatsMin, snap.StatsMax, snap.StatsMean, boolInt(snap.StatsKnown),
	)
	return err
}

func (r *SQLiteRecorder) RecordFetchFailure(evt *FetchFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_failures (timestamp, source, reason)
		VALUES (?,?,?)`,
		evt.At.Unix(), evt.Source, evt.Reason,
	)
	return err
}

func (r *SQLiteRecorder) RecordBacklight(evt *BacklightEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO backlight_events (timestamp, lit, quiet, trigger_)
		VALUES (?,?,?,?)`,
		evt.At.Unix(), boolInt(evt.Lit), boolInt(evt.Quiet), evt.Trigger,
	)
	return err
}

func (r *SQLiteRecorder) RecordDailySummary(sum *DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT OR REPLACE INTO daily_summaries (day, min, max, mean)
		VALUES (?,?,?,?)`,
		sum.Day, sum.Min, sum.Max, sum.Mean,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
