package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"camrec/internal/config"
)

// Entry is one cataloged recording.
type Entry struct {
	ID          int64
	URI         string
	DisplayName string
	Container   string
	Status      Status
	Path        string
	Bytes       int64
	DurationMS  int64
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status describes an entry's lifecycle.
type Status string

const (
	// StatusPending marks an entry whose recording is still in flight.
	StatusPending Status = "pending"
	// StatusComplete marks a successfully finalized recording.
	StatusComplete Status = "complete"
	// StatusFailed marks a recording finalized with an error.
	StatusFailed Status = "failed"
)

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db        *sql.DB
	lock      *flock.Flock
	outputDir string
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    uri TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    container TEXT NOT NULL,
    status TEXT NOT NULL,
    path TEXT NOT NULL,
    bytes INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    error_message TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status);
`

// Open initializes or connects to the catalog database. The catalog
// directory is guarded by a file lock; a second opener fails fast.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.CatalogDir, "catalog.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock catalog dir: %w", err)
	}
	if !locked {
		return nil, errors.New("catalog is locked by another process")
	}

	dbPath := filepath.Join(cfg.Paths.CatalogDir, "catalog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, lock: lock, outputDir: cfg.Paths.OutputDir}, nil
}

// Close releases the database connection and the directory lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
		s.lock = nil
	}
	return err
}

// Insert creates a pending entry and resolves its output path and URI.
func (s *Store) Insert(ctx context.Context, displayName, container string) (*Entry, error) {
	name := DisplayTitle(displayName)
	if name == "" {
		name = "Recording " + time.Now().UTC().Format("2006-01-02 15:04:05")
	}

	id := uuid.NewString()
	uri := "camrec://recordings/" + id
	path := filepath.Join(s.outputDir, id+"."+container)
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO entries (
            uri, display_name, container, status, path, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uri,
		name,
		container,
		StatusPending,
		path,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	rowID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, rowID)
}

// Finalize stamps an entry with the recording outcome.
func (s *Store) Finalize(ctx context.Context, id int64, bytes int64, duration time.Duration, errMessage string) error {
	status := StatusComplete
	if errMessage != "" {
		status = StatusFailed
	}
	_, err := s.db.ExecContext(
		ctx,
		`UPDATE entries
         SET status = ?, bytes = ?, duration_ms = ?, error_message = ?, updated_at = ?
         WHERE id = ?`,
		status,
		bytes,
		duration.Milliseconds(),
		nullableString(errMessage),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("finalize entry: %w", err)
	}
	return nil
}

const entryColumns = `id, uri, display_name, container, status, path, bytes, duration_ms, error_message, created_at, updated_at`

// GetByID fetches an entry by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// List returns entries filtered by status set (or all entries when no
// status is provided), ordered by creation time.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Entry, error) {
	baseQuery := `SELECT ` + entryColumns + ` FROM entries`
	orderClause := ` ORDER BY created_at`

	var (
		rows *sql.Rows
		err  error
	)
	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(statuses)), ", ")
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		rows, err = s.db.QueryContext(ctx, baseQuery+` WHERE status IN (`+placeholders+`)`+orderClause, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry     Entry
		errMsg    sql.NullString
		createdAt string
		updatedAt string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.URI,
		&entry.DisplayName,
		&entry.Container,
		&entry.Status,
		&entry.Path,
		&entry.Bytes,
		&entry.DurationMS,
		&errMsg,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	entry.Error = errMsg.String
	entry.CreatedAt = parseTime(createdAt)
	entry.UpdatedAt = parseTime(updatedAt)
	return &entry, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
