// Package storage provides SQLite-based persistence for autoplay runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one finished autoplay game.
type Run struct {
	ID         int64
	Label      string // groups runs of one configuration, e.g. a sweep vector
	Depth      int
	Weights    string // heuristic configuration as "id=w,id=w"
	Seed       int64
	Score      int // merge points
	TileSum    int
	MaxTile    int
	Moves      int
	Outcome    string // "win", "lose" or "ongoing" when cut off
	DurationMS int64
	CreatedAt  time.Time
}

// LabelStats contains aggregated statistics for one label.
type LabelStats struct {
	Label      string
	Runs       int
	Wins       int
	BestTile   int
	HighScore  int
	AvgScore   float64
	AvgMoves   float64
	LastPlayed time.Time
}

// WinRate returns the share of runs that reached the target.
func (s LabelStats) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; sweep workers share this handle.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			depth INTEGER NOT NULL,
			weights TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			tile_sum INTEGER NOT NULL DEFAULT 0,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_label ON runs(label);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(label, max_tile DESC, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (label, depth, weights, seed, score, tile_sum, max_tile, moves, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Label, r.Depth, r.Weights, r.Seed, r.Score, r.TileSum, r.MaxTile, r.Moves, r.Outcome, r.DurationMS,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs for a label, or across all labels
// when label is empty. Results are ordered by max tile, then score.
func (s *Store) TopRuns(label string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, label, depth, weights, seed, score, tile_sum, max_tile, moves, outcome, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR label = ?
		 ORDER BY max_tile DESC, score DESC, id ASC
		 LIMIT ?`,
		label, label, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Label, &r.Depth, &r.Weights, &r.Seed, &r.Score, &r.TileSum,
			&r.MaxTile, &r.Moves, &r.Outcome, &r.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns removes all runs for a label, or every run when label is empty.
func (s *Store) ClearRuns(label string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR label = ?", label, label)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LabelStats retrieves aggregated statistics for a label.
func (s *Store) LabelStats(label string) (*LabelStats, error) {
	stats := &LabelStats{Label: label}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(AVG(moves), 0)
		 FROM runs WHERE label = ?`,
		label,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestTile, &stats.HighScore, &stats.AvgScore, &stats.AvgMoves)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get label stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE label = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		label,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllLabelStats retrieves statistics for every label with recorded runs.
func (s *Store) AllLabelStats() (map[string]*LabelStats, error) {
	rows, err := s.db.Query(
		`SELECT label, COUNT(*),
		        SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END),
		        MAX(max_tile), MAX(score), AVG(score), AVG(moves), MAX(created_at)
		 FROM runs
		 GROUP BY label`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all label stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LabelStats)
	for rows.Next() {
		var ls LabelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Label, &ls.Runs, &ls.Wins, &ls.BestTile, &ls.HighScore,
			&ls.AvgScore, &ls.AvgMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Label] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
