package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
	"github.com/maxviazov/game-tracker-service/internal/repository/contract"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "tracker.db"), zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	return s
}

func makeGameRepo(t *testing.T) (repository.GameRepository, func()) {
	s := openTestStore(t)
	games, _, _, _ := s.Repositories()
	return games, func() { _ = s.Close() }
}

func makeReviewRepo(t *testing.T) (repository.ReviewRepository, func(ctx context.Context, title string) (string, error), func()) {
	s := openTestStore(t)
	games, reviews, _, _ := s.Repositories()
	mkGame := func(ctx context.Context, title string) (string, error) {
		g, err := games.Create(ctx, model.Game{Title: title, Genre: model.GenreAction, Platform: model.PlatformPC, ReleaseYear: 2024})
		if err != nil {
			return "", err
		}
		return g.ID, nil
	}
	return reviews, mkGame, func() { _ = s.Close() }
}

func makeTx(t *testing.T) (repository.TxManager, repository.GameRepository, repository.ReviewRepository, func()) {
	s := openTestStore(t)
	games, reviews, tx, _ := s.Repositories()
	return tx, games, reviews, func() { _ = s.Close() }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	s := openTestStore(t)
	return s, func() { _ = s.Close() }
}

func TestGameRepository_SQLiteContract(t *testing.T) {
	contract.RunGameRepositoryContract(t, makeGameRepo)
}

func TestReviewRepository_SQLiteContract(t *testing.T) {
	contract.RunReviewRepositoryContract(t, makeReviewRepo)
}

func TestTxManager_SQLiteContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_SQLiteContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.db")
	ctx := context.Background()

	s, err := Open(ctx, path, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	games, _, _, _ := s.Repositories()
	created, err := games.Create(ctx, model.Game{Title: "Outer Wilds", Genre: model.GenreAdventure, Platform: model.PlatformPC, ReleaseYear: 2019})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = s.Close()

	// migrations must be idempotent across restarts
	s, err = Open(ctx, path, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	games, _, _, _ = s.Repositories()
	got, err := games.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Title != "Outer Wilds" {
		t.Fatalf("unexpected game: %+v", got)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  ", zerolog.New(io.Discard)); err == nil {
		t.Fatalf("expected error for blank path")
	}
}
