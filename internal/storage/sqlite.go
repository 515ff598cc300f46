package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// SQLiteStorage implements Storage using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serialises writes
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -16000", // 16MB cache
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &SQLiteStorage{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// NewInMemoryStorage creates an in-memory SQLite storage (for testing)
func NewInMemoryStorage() (*SQLiteStorage, error) {
	return NewSQLiteStorage(":memory:")
}

// migrate runs database migrations
func (s *SQLiteStorage) migrate() error {
	_, err := s.db.Exec(initialMigration)
	if err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	return nil
}

const initialMigration = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    filename TEXT NOT NULL,
    format TEXT NOT NULL,
    content TEXT NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_session_id ON documents(session_id);
CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at DESC);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

INSERT OR IGNORE INTO schema_version (version) VALUES (1);
`

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or ErrNotFound
func (s *SQLiteStorage) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *SQLiteStorage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *SQLiteStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys starting with prefix, sorted
func (s *SQLiteStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`,
		escapeLikeWildcards(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// SaveDocuments archives one generation run under a session id
func (s *SQLiteStorage) SaveDocuments(ctx context.Context, sessionID string, docs []domain.GeneratedDocument) ([]*DocumentRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	records := make([]*DocumentRecord, 0, len(docs))
	for _, doc := range docs {
		rec := &DocumentRecord{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Filename:  doc.Filename,
			Format:    doc.Format,
			Size:      len(doc.Content),
			Content:   doc.Content,
			CreatedAt: now,
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO documents (id, session_id, filename, format, content, size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			rec.ID,
			rec.SessionID,
			rec.Filename,
			string(rec.Format),
			rec.Content,
			rec.Size,
			rec.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert document: %w", err)
		}
		records = append(records, rec)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return records, nil
}

// GetDocument returns one archived document with its content
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*DocumentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, filename, format, size, created_at, content
		FROM documents WHERE id = ?
	`, id)

	rec := &DocumentRecord{}
	var format, createdAt string
	err := row.Scan(&rec.ID, &rec.SessionID, &rec.Filename, &format, &rec.Size, &createdAt, &rec.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	rec.Format = domain.DocumentFormat(format)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// ListDocuments lists archived documents, newest first, without content
func (s *SQLiteStorage) ListDocuments(ctx context.Context, filter *DocumentFilter) ([]*DocumentRecord, error) {
	where, args := buildWhereClause(filter)

	limit := 100
	offset := 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
	}
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, filename, format, size, created_at
		FROM documents`+where+`
		ORDER BY created_at DESC, filename ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var records []*DocumentRecord
	for rows.Next() {
		rec := &DocumentRecord{}
		var format, createdAt string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Filename, &format, &rec.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		rec.Format = domain.DocumentFormat(format)
		rec.CreatedAt = parseTime(createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteDocuments removes every archived document of a session
func (s *SQLiteStorage) DeleteDocuments(ctx context.Context, sessionID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}

func buildWhereClause(filter *DocumentFilter) (string, []any) {
	if filter == nil {
		return "", nil
	}

	var conditions []string
	var args []any
	if filter.SessionID != "" {
		conditions = append(conditions, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.Filename != "" {
		conditions = append(conditions, "filename = ?")
		args = append(args, filter.Filename)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func escapeLikeWildcards(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
