// Package store archives rendered map documents.
//
// Each successful render session can be archived so the page is retrievable
// later by id (the HTTP API serves archived pages, the CLI lists them).
// Backends:
//   - memory: in-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// Document is one archived render session.
type Document struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CenterLat float64   `bson:"center_lat" json:"center_lat"`
	CenterLng float64   `bson:"center_lng" json:"center_lng"`
	Zoom      int       `bson:"zoom" json:"zoom"`
	Points    int       `bson:"points" json:"points"`
	HTML      []byte    `bson:"html" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Store is the interface for archive backends.
type Store interface {
	// Save persists a document.
	Save(ctx context.Context, doc *Document) error

	// Get retrieves a document by id, including its page bytes.
	// Returns ErrNotFound when the id is unknown.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns document metadata (no page bytes), newest first.
	List(ctx context.Context) ([]Document, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
