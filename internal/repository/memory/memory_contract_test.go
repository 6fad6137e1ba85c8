package memory

import (
	"context"
	"testing"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
	"github.com/maxviazov/game-tracker-service/internal/repository/contract"
)

func makeGameRepo(t *testing.T) (repository.GameRepository, func()) {
	games, _, _, _ := NewStore().Repositories()
	return games, func() {}
}

func makeReviewRepo(t *testing.T) (repository.ReviewRepository, func(ctx context.Context, title string) (string, error), func()) {
	games, reviews, _, _ := NewStore().Repositories()
	mkGame := func(ctx context.Context, title string) (string, error) {
		g, err := games.Create(ctx, model.Game{Title: title, Genre: model.GenreAction, Platform: model.PlatformPC})
		if err != nil {
			return "", err
		}
		return g.ID, nil
	}
	return reviews, mkGame, func() {}
}

func makeTx(t *testing.T) (repository.TxManager, repository.GameRepository, repository.ReviewRepository, func()) {
	games, reviews, tx, _ := NewStore().Repositories()
	return tx, games, reviews, func() {}
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	_, _, _, p := NewStore().Repositories()
	return p, func() {}
}

func TestGameRepository_MemoryContract(t *testing.T) {
	contract.RunGameRepositoryContract(t, makeGameRepo)
}

func TestReviewRepository_MemoryContract(t *testing.T) {
	contract.RunReviewRepositoryContract(t, makeReviewRepo)
}

func TestTxManager_MemoryContract(t *testing.T) {
	contract.RunTxManagerContract(t, makeTx)
}

func TestPinger_MemoryContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	games, _, tx, _ := NewStore().Repositories()
	ctx := context.Background()

	err := tx.WithinTx(ctx, func(ctx context.Context) error {
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			_, err := games.Create(ctx, model.Game{Title: "inner"})
			return err
		})
	})
	if err != nil {
		t.Fatalf("nested tx: %v", err)
	}
	all, _ := games.List(ctx, model.GameFilter{})
	if len(all) != 1 {
		t.Fatalf("expected inner write committed, got %d games", len(all))
	}
}
