// Package memory is an in-process storage backend for dev mode and tests.
// Games and reviews share one Store so foreign keys and cascades behave like SQL.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/maxviazov/game-tracker-service/internal/repository"
)

// Store keeps rows in insertion order.
type Store struct {
	mu      sync.RWMutex
	games   []gameRow
	reviews []reviewRow
	now     func() time.Time

	// txMu serializes units of work; WithinTx restores a snapshot on error.
	txMu sync.Mutex
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

// Repositories returns game and review repositories, a tx manager and a pinger over one store.
func (s *Store) Repositories() (repository.GameRepository, repository.ReviewRepository, repository.TxManager, repository.Pinger) {
	return &gameRepository{s: s}, &reviewRepository{s: s}, &txManager{s: s}, s
}

// Ping always succeeds; the store has no external dependency.
func (s *Store) Ping(context.Context) error { return nil }

type snapshot struct {
	games   []gameRow
	reviews []reviewRow
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{games: slices.Clone(s.games), reviews: slices.Clone(s.reviews)}
}

// restore rolls back to snap wholesale. A write made outside WithinTx while the
// transaction ran is lost too, so this store is for development and tests only.
func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games = snap.games
	s.reviews = snap.reviews
}

type txKey struct{}

type txManager struct{ s *Store }

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	snap := m.s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.restore(snap)
		return err
	}
	return nil
}

var (
	_ repository.TxManager = (*txManager)(nil)
	_ repository.Pinger    = (*Store)(nil)
)
