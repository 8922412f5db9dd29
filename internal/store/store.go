// Package store persists session snapshots so a client can resume
// after a disconnect. The SQL implementation works with any
// database/sql driver; the serve command opens it over sqlite.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means no live snapshot exists for the id.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrClosed means the store has been closed.
	ErrClosed = errors.New("store: closed")
)

// Store persists opaque session snapshots with an expiry.
type Store interface {
	// Save upserts a snapshot.
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error

	// Load returns a snapshot that exists and has not expired.
	Load(ctx context.Context, sessionID string) ([]byte, error)

	// Delete removes a snapshot. Deleting a missing snapshot is not an
	// error.
	Delete(ctx context.Context, sessionID string) error

	// Close releases the store's resources.
	Close() error
}
