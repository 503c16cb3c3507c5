// Package history keeps a local SQLite audit log of every API call the
// console issues. Recording is best-effort; a broken database must never
// interfere with the UI.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ecoblock/ecoblock-admin/internal/types"
)

const timestampFormat = "2006-01-02 15:04:05"

type Manager struct {
	db *sql.DB
}

// NewManager opens (and if needed creates) the audit database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS api_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		method TEXT NOT NULL,
		path TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_api_log_timestamp ON api_log(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_api_log_path ON api_log(path);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Record stores one completed exchange. Status 0 means the request never
// got a response. Implements the API client's Recorder.
func (m *Manager) Record(method, path string, status int, duration time.Duration, errMsg string) {
	query := `
		INSERT INTO api_log (timestamp, method, path, status, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, _ = m.db.Exec(query,
		time.Now().Local().Format(timestampFormat),
		method,
		path,
		status,
		duration.Milliseconds(),
		errMsg,
	)
}

// Load returns the most recent entries, newest first. limit <= 0 means a
// sensible default.
func (m *Manager) Load(limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = 200
	}

	query := `
		SELECT id, timestamp, method, path, status, duration_ms, COALESCE(error, '')
		FROM api_log
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Method, &e.Path, &e.Status, &e.DurationMs, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every recorded entry.
func (m *Manager) Clear() error {
	if _, err := m.db.Exec(`DELETE FROM api_log`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (m *Manager) Close() error {
	return m.db.Close()
}
