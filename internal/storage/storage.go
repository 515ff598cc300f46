package storage

import (
	"context"
	"errors"
	"time"

	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// ErrNotFound is returned when a key or record does not exist
var ErrNotFound = errors.New("not found")

// DocumentRecord represents an archived generated document
type DocumentRecord struct {
	ID        string
	SessionID string
	Filename  string
	Format    domain.DocumentFormat
	Size      int
	Content   string // Loaded on demand
	CreatedAt time.Time
}

// Document converts the record back into a generated document
func (r *DocumentRecord) Document() domain.GeneratedDocument {
	return domain.GeneratedDocument{
		Filename:     r.Filename,
		Content:      r.Content,
		Format:       r.Format,
		Downloadable: true,
	}
}

// DocumentFilter provides filtering options for listing documents
type DocumentFilter struct {
	SessionID string // Filter by session
	Filename  string // Filter by filename
	Limit     int    // Max results (default 100)
	Offset    int    // Pagination offset
}

// KeyValueStore is the session persistence port
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// DocumentStore archives generated documents
type DocumentStore interface {
	SaveDocuments(ctx context.Context, sessionID string, docs []domain.GeneratedDocument) ([]*DocumentRecord, error)
	GetDocument(ctx context.Context, id string) (*DocumentRecord, error)
	ListDocuments(ctx context.Context, filter *DocumentFilter) ([]*DocumentRecord, error)
	DeleteDocuments(ctx context.Context, sessionID string) error
}

// Storage defines the interface for persistence operations
type Storage interface {
	// Lifecycle
	Close() error

	KeyValueStore
	DocumentStore
}
