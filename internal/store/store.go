// Package store persists wardrobe items in an embedded SQLite database.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/erazemk/garderoba/internal/db"
)

// Store owns the wardrobe_items table. It must be initialized before use and
// is safe for concurrent use afterwards.
type Store struct {
	path  string
	now   func() time.Time
	log   *slog.Logger
	locks *recordLocks

	mu sync.RWMutex
	db *sqlx.DB
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for store events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New returns an unopened store backed by the SQLite database at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		now:   time.Now,
		log:   slog.Default(),
		locks: newRecordLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize opens the database and ensures the schema exists. Calling it
// again on an initialized store is a no-op.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	database, err := db.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return fmt.Errorf("%w: pinging database: %w", ErrStorage, err)
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	s.db = database
	s.log.Info("item store initialized", "path", s.path)
	return nil
}

// Close releases the database handle. Later operations return ErrNotInitialized.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("%w: closing database: %w", ErrStorage, err)
	}
	return nil
}

// Ping checks that the store is initialized and the database answers.
func (s *Store) Ping(ctx context.Context) error {
	database, err := s.handle()
	if err != nil {
		return err
	}
	if err := database.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: pinging database: %w", ErrStorage, err)
	}
	return nil
}

// handle returns the open database or ErrNotInitialized.
func (s *Store) handle() (*sqlx.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

// storageErr wraps a backend failure so it is distinguishable from logical errors.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
