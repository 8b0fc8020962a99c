// Package store persists finished alignments so they can be listed and
// rendered again later.
//
// Implementations for different backends:
//   - memory: in-process storage for development and tests
//   - file: one JSON file per record, for single-host servers
//   - mongo: MongoDB-backed storage for multi-instance deployments
//
// # Usage
//
//	st, err := store.NewMongoStore(ctx, store.MongoOptions{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "seqalign",
//	})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	rec := store.NewRecord(key, "left", "top", doc)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/seqalign/pkg/seqio"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// DefaultListLimit bounds List when the caller passes no limit.
const DefaultListLimit = 50

// Record is one stored alignment.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Key       string         `json:"key" bson:"key"` // Alignment cache key
	LeftName  string         `json:"left_name" bson:"left_name"`
	TopName   string         `json:"top_name" bson:"top_name"`
	Document  seqio.Document `json:"document" bson:"document"`
}

// NewRecord wraps doc in a record with a fresh random ID.
func NewRecord(key, leftName, topName string, doc seqio.Document) *Record {
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Key:       key,
		LeftName:  leftName,
		TopName:   topName,
		Document:  doc,
	}
}

// Store is the interface for alignment storage backends.
type Store interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first. A limit <= 0 uses
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]*Record, error)

	Close() error
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// newestFirst orders records by creation time, descending, then by ID.
func newestFirst(a, b *Record) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
