package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/erazemk/garderoba/internal/db"
)

// NewTestStore creates an initialized store on a fresh in-memory database.
func NewTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	s := New(db.Memory, opts...)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initializing test store: %v", err)
	}

	t.Cleanup(func() { s.Close() })

	return s
}
