package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Dialect selects the SQL syntax for query generation.
type Dialect int

const (
	// DialectSQLite uses sqlite syntax (? placeholders, INSERT OR REPLACE).
	DialectSQLite Dialect = iota
	// DialectPostgreSQL uses PostgreSQL syntax ($n placeholders, ON CONFLICT).
	DialectPostgreSQL
)

// SQLStore is a SQL-backed snapshot store.
type SQLStore struct {
	db              *sql.DB
	table           string
	dialect         Dialect
	cleanupInterval time.Duration
	logger          *slog.Logger

	closed atomic.Bool
	done   chan struct{}
}

// SQLOption configures a SQLStore.
type SQLOption func(*SQLStore)

// WithTable sets the table name. Default: "weft_snapshots".
func WithTable(name string) SQLOption {
	return func(s *SQLStore) {
		s.table = name
	}
}

// WithDialect sets the SQL dialect. Default: DialectSQLite.
func WithDialect(d Dialect) SQLOption {
	return func(s *SQLStore) {
		s.dialect = d
	}
}

// WithCleanupInterval sets how often expired snapshots are purged.
// Zero disables the purge loop. Default: 5 minutes.
func WithCleanupInterval(d time.Duration) SQLOption {
	return func(s *SQLStore) {
		s.cleanupInterval = d
	}
}

// WithLogger routes purge diagnostics to logger.
func WithLogger(logger *slog.Logger) SQLOption {
	return func(s *SQLStore) {
		s.logger = logger
	}
}

// NewSQLStore creates a store over an open database, creates the table
// when absent, and starts the purge loop.
func NewSQLStore(ctx context.Context, db *sql.DB, opts ...SQLOption) (*SQLStore, error) {
	s := &SQLStore{
		db:              db,
		table:           "weft_snapshots",
		dialect:         DialectSQLite,
		cleanupInterval: 5 * time.Minute,
		logger:          slog.Default(),
		done:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.createTable(ctx); err != nil {
		return nil, err
	}
	if s.cleanupInterval > 0 {
		go s.cleanupLoop()
	}
	return s, nil
}

func (s *SQLStore) createTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         VARCHAR(64) PRIMARY KEY,
			data       BLOB NOT NULL,
			expires_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`, s.table)
	if s.dialect == DialectPostgreSQL {
		query = fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id         VARCHAR(64) PRIMARY KEY,
			data       BYTEA NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`, s.table)
	}
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("store: create table: %w", err)
	}
	return nil
}

// Save upserts a snapshot.
func (s *SQLStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	if s.closed.Load() {
		return ErrClosed
	}

	var query string
	switch s.dialect {
	case DialectPostgreSQL:
		query = fmt.Sprintf(`
			INSERT INTO %s (id, data, expires_at, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				data = EXCLUDED.data,
				expires_at = EXCLUDED.expires_at,
				updated_at = EXCLUDED.updated_at`, s.table)
	default:
		query = fmt.Sprintf(`
			INSERT OR REPLACE INTO %s (id, data, expires_at, updated_at)
			VALUES (?, ?, ?, ?)`, s.table)
	}

	if _, err := s.db.ExecContext(ctx, query, sessionID, data, expiresAt, time.Now()); err != nil {
		return fmt.Errorf("store: save %s: %w", sessionID, err)
	}
	return nil
}

// Load returns the snapshot when it exists and has not expired.
func (s *SQLStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	query := fmt.Sprintf(`SELECT data FROM %s WHERE id = ? AND expires_at > ?`, s.table)
	if s.dialect == DialectPostgreSQL {
		query = fmt.Sprintf(`SELECT data FROM %s WHERE id = $1 AND expires_at > $2`, s.table)
	}

	var data []byte
	err := s.db.QueryRowContext(ctx, query, sessionID, time.Now()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", sessionID, err)
	}
	return data, nil
}

// Delete removes a snapshot.
func (s *SQLStore) Delete(ctx context.Context, sessionID string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.table)
	if s.dialect == DialectPostgreSQL {
		query = fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)
	}
	if _, err := s.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("store: delete %s: %w", sessionID, err)
	}
	return nil
}

// Close stops the purge loop. The caller owns the *sql.DB.
func (s *SQLStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	close(s.done)
	return nil
}

func (s *SQLStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *SQLStore) cleanup() {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= ?`, s.table)
	if s.dialect == DialectPostgreSQL {
		query = fmt.Sprintf(`DELETE FROM %s WHERE expires_at <= $1`, s.table)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	res, err := s.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		s.logger.Error("snapshot purge failed", "error", err)
		return
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		s.logger.Debug("purged expired snapshots", "count", n)
	}
}
