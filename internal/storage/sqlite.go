// Package storage provides SQLite-based persistence for level runs.
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

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one recorded visit of a level.
type Run struct {
	ID        int64
	World     string
	Burrow    string
	Depth     int
	Level     string
	Moves     int
	Captured  int
	Cleared   bool
	CreatedAt time.Time
}

// WorldStats contains aggregated statistics for one world.
type WorldStats struct {
	World         string
	Runs          int
	ClearedRuns   int
	LevelsCleared int // Distinct (burrow, depth) pairs cleared at least once
	Captured      int64
	LastPlayed    time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
			world TEXT NOT NULL,
			burrow TEXT NOT NULL,
			depth INTEGER NOT NULL,
			level TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL DEFAULT 0,
			captured INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_world ON runs(world);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(world, burrow, depth);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(world, cleared DESC, moves ASC);
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

// SaveRun records a run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (world, burrow, depth, level, moves, captured, cleared)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.World, r.Burrow, r.Depth, r.Level, r.Moves, r.Captured, boolToInt(r.Cleared),
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

const runColumns = `id, world, burrow, depth, level, moves, captured, cleared, created_at`

// BestRuns retrieves the best N runs of a world: cleared runs first, then
// fewest moves, then most creatures captured.
func (s *Store) BestRuns(world string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE world = ?
		 ORDER BY cleared DESC, moves ASC, captured DESC, id ASC
		 LIMIT ?`,
		world, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsForLevel retrieves the most recent N runs of one level.
func (s *Store) RunsForLevel(world, burrow string, depth, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE world = ? AND burrow = ? AND depth = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		world, burrow, depth, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level runs: %w", err)
	}
	return scanRuns(rows)
}

// BestMoves returns the fewest moves any cleared run of a level took.
// ok is false when the level was never cleared.
func (s *Store) BestMoves(world, burrow string, depth int) (moves int, ok bool, err error) {
	var best sql.NullInt64
	err = s.db.QueryRow(
		`SELECT MIN(moves) FROM runs
		 WHERE world = ? AND burrow = ? AND depth = ? AND cleared = 1`,
		world, burrow, depth,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot get best moves: %w", err)
	}
	return int(best.Int64), best.Valid, nil
}

// ClearRuns deletes all runs of a world.
func (s *Store) ClearRuns(world string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE world = ?", world)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.World, &r.Burrow, &r.Depth, &r.Level,
			&r.Moves, &r.Captured, &r.Cleared, &createdAt); err != nil {
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime handles both time.Time and string datetimes from the driver.
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

// GetWorldStats retrieves aggregated statistics for a world.
func (s *Store) GetWorldStats(world string) (*WorldStats, error) {
	stats := &WorldStats{World: world}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(cleared), 0), COALESCE(SUM(captured), 0)
		 FROM runs WHERE world = ?`,
		world,
	).Scan(&stats.Runs, &stats.ClearedRuns, &stats.Captured)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get world stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM (
			SELECT DISTINCT burrow, depth FROM runs WHERE world = ? AND cleared = 1
		 )`,
		world,
	).Scan(&stats.LevelsCleared)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot count cleared levels: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE world = ? ORDER BY id DESC LIMIT 1`,
		world,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Worlds returns the names of all worlds with recorded runs, sorted.
func (s *Store) Worlds() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT world FROM runs ORDER BY world`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list worlds: %w", err)
	}
	defer rows.Close()

	var worlds []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("storage: cannot scan world: %w", err)
		}
		worlds = append(worlds, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return worlds, nil
}
