// Package storage provides SQLite-based persistence for named layouts and
// search run history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/katalvlaran/gridstar/layout"
)

// ErrNotFound indicates a missing layout.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// LayoutInfo summarizes a stored layout.
type LayoutInfo struct {
	Name      string
	Width     int
	Height    int
	Obstacles int
	UpdatedAt time.Time
}

// RunRecord is one completed (or cancelled) search.
type RunRecord struct {
	ID        string // UUID; generated by SaveRun when empty
	Layout    string
	Heuristic string
	Status    string
	Cost      float64 // 0 unless Status is "succeeded"
	PathLen   int
	Expanded  int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates the run history of one layout.
type RunStats struct {
	Layout      string
	Runs        int
	Succeeded   int
	BestCost    float64 // 0 when no run succeeded
	AvgExpanded float64
	LastRun     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// A nil logger discards output.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

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

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	logger.Debug("opened run store", "path", dbPath)

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS layouts (
			name TEXT PRIMARY KEY,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			obstacles INTEGER NOT NULL,
			body TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			layout TEXT NOT NULL,
			heuristic TEXT NOT NULL,
			status TEXT NOT NULL,
			cost REAL NOT NULL DEFAULT 0,
			path_len INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_layout ON runs(layout);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
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

// SaveLayout inserts or replaces the layout stored under l.Name.
func (s *Store) SaveLayout(l *layout.Layout) error {
	if l.Name == "" {
		return fmt.Errorf("storage: layout name is empty")
	}
	body, err := layout.Marshal(l)
	if err != nil {
		return fmt.Errorf("storage: cannot encode layout %s: %w", l.Name, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO layouts (name, width, height, obstacles, body, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   width = excluded.width,
		   height = excluded.height,
		   obstacles = excluded.obstacles,
		   body = excluded.body,
		   updated_at = CURRENT_TIMESTAMP`,
		l.Name, l.Width, l.Height, len(l.Obstacles), string(body),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save layout %s: %w", l.Name, err)
	}
	s.logger.Debug("saved layout", "name", l.Name, "size", fmt.Sprintf("%dx%d", l.Width, l.Height))

	return nil
}

// LoadLayout returns the layout stored under name, or ErrNotFound.
func (s *Store) LoadLayout(name string) (*layout.Layout, error) {
	var body string
	err := s.db.QueryRow("SELECT body FROM layouts WHERE name = ?", name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: layout %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layout: %w", err)
	}

	l, err := layout.Parse([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("storage: stored layout %s: %w", name, err)
	}

	return l, nil
}

// ListLayouts returns all stored layouts ordered by name.
func (s *Store) ListLayouts() ([]LayoutInfo, error) {
	rows, err := s.db.Query(
		`SELECT name, width, height, obstacles, updated_at FROM layouts ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var out []LayoutInfo
	for rows.Next() {
		var li LayoutInfo
		var updatedAt any
		if err := rows.Scan(&li.Name, &li.Width, &li.Height, &li.Obstacles, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		li.UpdatedAt = parseTime(updatedAt)
		out = append(out, li)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// DeleteLayout removes a stored layout; its run history is kept.
func (s *Store) DeleteLayout(name string) error {
	res, err := s.db.Exec("DELETE FROM layouts WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete layout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: layout %q", ErrNotFound, name)
	}
	return nil
}

// SaveRun records a run. It returns the run ID, generating a UUID when
// r.ID is empty.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, layout, heuristic, status, cost, path_len, expanded, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Layout, r.Heuristic, r.Status, r.Cost, r.PathLen, r.Expanded, r.Duration.Microseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	s.logger.Debug("saved run", "id", r.ID, "layout", r.Layout, "status", r.Status)

	return r.ID, nil
}

// Runs returns the most recent runs, newest first. An empty layoutName
// selects all layouts; limit <= 0 means 20.
func (s *Store) Runs(layoutName string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, layout, heuristic, status, cost, path_len, expanded, duration_us, created_at
	          FROM runs`
	args := []any{}
	if layoutName != "" {
		query += " WHERE layout = ?"
		args = append(args, layoutName)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var durUS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Layout, &r.Heuristic, &r.Status, &r.Cost,
			&r.PathLen, &r.Expanded, &durUS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durUS) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// Stats aggregates the run history of one layout.
func (s *Store) Stats(layoutName string) (*RunStats, error) {
	st := &RunStats{Layout: layoutName}
	var best sql.NullFloat64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'succeeded' THEN 1 ELSE 0 END), 0),
		        MIN(CASE WHEN status = 'succeeded' THEN cost END),
		        COALESCE(AVG(expanded), 0)
		 FROM runs WHERE layout = ?`,
		layoutName,
	).Scan(&st.Runs, &st.Succeeded, &best, &st.AvgExpanded)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	if best.Valid {
		st.BestCost = best.Float64
	}

	var last any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE layout = ? ORDER BY created_at DESC LIMIT 1`,
		layoutName,
	).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		st.LastRun = parseTime(last)
	}

	return st, nil
}

// parseTime handles both time.Time and string datetime columns.
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
