// Package contract holds backend-agnostic repository test suites.
// Every storage backend wires its factories into these runners.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

type GameFactory func(t *testing.T) (repository.GameRepository, func())

type ReviewFactory func(t *testing.T) (repo repository.ReviewRepository, createGame func(ctx context.Context, title string) (string, error), cleanup func())

type TxFactory func(t *testing.T) (tx repository.TxManager, games repository.GameRepository, reviews repository.ReviewRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func sampleGame(title string) model.Game {
	return model.Game{
		Title:         title,
		Genre:         model.GenreRPG,
		Platform:      model.PlatformPC,
		ReleaseYear:   2020,
		Developer:     "Studio",
		CoverImageURL: model.DefaultCoverImageURL,
		Description:   model.DefaultDescription,
	}
}

func sampleReview(gameID string, score int) model.Review {
	return model.Review{
		Game:           model.RefID(gameID),
		Score:          score,
		Text:           "solid",
		HoursPlayed:    12.5,
		Difficulty:     model.DifficultyNormal,
		WouldRecommend: true,
	}
}

func RunGameRepositoryContract(t *testing.T, makeRepo GameFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, sampleGame("Hollow Knight"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == "" || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamps assigned: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Title != "Hollow Knight" || got.Genre != model.GenreRPG || got.Platform != model.PlatformPC {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.ReleaseYear != 2020 || got.Developer != "Studio" || got.Completed {
			t.Fatalf("attributes not persisted: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), "missing")
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_id", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g := sampleGame("Dup")
		g.ID = "fixed-id"
		if _, err := repo.Create(ctx, g); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, g); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("list_creation_order_and_filter", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		titles := []string{"C", "A", "B", "D"}
		for i, title := range titles {
			g := sampleGame(title)
			g.Completed = i%2 == 0
			if _, err := repo.Create(ctx, g); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		all, err := repo.List(ctx, model.GameFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 4 {
			t.Fatalf("expected 4 games, got %d", len(all))
		}
		for i, g := range all {
			if g.Title != titles[i] {
				t.Fatalf("expected creation order %v, got %q at %d", titles, g.Title, i)
			}
		}

		done := true
		completed, err := repo.List(ctx, model.GameFilter{Completed: &done})
		if err != nil {
			t.Fatalf("list completed: %v", err)
		}
		if len(completed) != 2 || completed[0].Title != "C" || completed[1].Title != "B" {
			t.Fatalf("unexpected completed set: %+v", completed)
		}

		pending := false
		open, err := repo.List(ctx, model.GameFilter{Completed: &pending})
		if err != nil {
			t.Fatalf("list pending: %v", err)
		}
		if len(open) != 2 || open[0].Title != "A" || open[1].Title != "D" {
			t.Fatalf("unexpected pending set: %+v", open)
		}
	})

	t.Run("list_empty_is_not_nil", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		all, err := repo.List(context.Background(), model.GameFilter{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if all == nil || len(all) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", all)
		}
	})

	t.Run("update", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, sampleGame("Celeste"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		created.Completed = true
		created.Platform = model.PlatformSwitch
		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !updated.Completed || updated.Platform != model.PlatformSwitch || updated.ID != created.ID {
			t.Fatalf("update not applied: %+v", updated)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !got.Completed || got.Title != "Celeste" {
			t.Fatalf("update not persisted: %+v", got)
		}

		missing := sampleGame("ghost")
		missing.ID = "missing"
		if _, err := repo.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, sampleGame("Inside"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func RunReviewRepositoryContract(t *testing.T, makeRepo ReviewFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		gameID, err := mkGame(ctx, "Hades")
		if err != nil {
			t.Fatalf("seed game: %v", err)
		}
		created, err := repo.Create(ctx, sampleReview(gameID, 5))
		if err != nil {
			t.Fatalf("create review: %v", err)
		}
		if created.ID == "" || created.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamps assigned: %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.GameID() != gameID || got.Score != 5 || got.Text != "solid" || got.HoursPlayed != 12.5 {
			t.Fatalf("mismatch: %+v", got)
		}
		if got.Difficulty != model.DifficultyNormal || !got.WouldRecommend {
			t.Fatalf("attributes not persisted: %+v", got)
		}
		if _, expanded := got.Game.Expanded(); expanded {
			t.Fatalf("stored reviews must carry a bare reference")
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_for_missing_game_conflicts", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		if _, err := repo.Create(context.Background(), sampleReview("missing", 3)); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("list_and_list_by_game", func(t *testing.T) {
		repo, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g1, err := mkGame(ctx, "One")
		if err != nil {
			t.Fatalf("seed game: %v", err)
		}
		g2, err := mkGame(ctx, "Two")
		if err != nil {
			t.Fatalf("seed game: %v", err)
		}
		for i, gid := range []string{g1, g2, g1, g2, g1} {
			if _, err := repo.Create(ctx, sampleReview(gid, i+1)); err != nil {
				t.Fatalf("seed review %d: %v", i, err)
			}
		}

		all, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 5 {
			t.Fatalf("expected 5 reviews, got %d", len(all))
		}
		for i, rv := range all {
			if rv.Score != i+1 {
				t.Fatalf("expected creation order, got score %d at %d", rv.Score, i)
			}
		}

		byGame, err := repo.ListByGame(ctx, g1)
		if err != nil {
			t.Fatalf("list by game: %v", err)
		}
		if len(byGame) != 3 || byGame[0].Score != 1 || byGame[1].Score != 3 || byGame[2].Score != 5 {
			t.Fatalf("unexpected reviews for game: %+v", byGame)
		}

		none, err := repo.ListByGame(ctx, "missing")
		if err != nil {
			t.Fatalf("list by missing game: %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", none)
		}
	})

	t.Run("update_keeps_game_reference", func(t *testing.T) {
		repo, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g1, _ := mkGame(ctx, "One")
		g2, _ := mkGame(ctx, "Two")
		created, err := repo.Create(ctx, sampleReview(g1, 2))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		created.Score = 4
		created.Text = "grew on me"
		created.Difficulty = model.DifficultyHard
		created.Game = model.RefID(g2)
		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Score != 4 || updated.Text != "grew on me" || updated.Difficulty != model.DifficultyHard {
			t.Fatalf("update not applied: %+v", updated)
		}
		if updated.GameID() != g1 {
			t.Fatalf("game reference must not change, got %q", updated.GameID())
		}

		missing := sampleReview(g1, 1)
		missing.ID = "missing"
		if _, err := repo.Update(ctx, missing); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete_and_delete_by_game", func(t *testing.T) {
		repo, mkGame, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g1, _ := mkGame(ctx, "One")
		g2, _ := mkGame(ctx, "Two")
		first, err := repo.Create(ctx, sampleReview(g1, 1))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		for _, gid := range []string{g1, g1, g2} {
			if _, err := repo.Create(ctx, sampleReview(gid, 3)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		if err := repo.Delete(ctx, first.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := repo.Delete(ctx, first.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}

		n, err := repo.DeleteByGame(ctx, g1)
		if err != nil {
			t.Fatalf("delete by game: %v", err)
		}
		if n != 2 {
			t.Fatalf("expected 2 removed, got %d", n)
		}
		n, err = repo.DeleteByGame(ctx, g1)
		if err != nil || n != 0 {
			t.Fatalf("expected nothing left to remove, got n=%d err=%v", n, err)
		}
		rest, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(rest) != 1 || rest[0].GameID() != g2 {
			t.Fatalf("unexpected leftovers: %+v", rest)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, games, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID string
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := games.Create(ctx, sampleGame("TxCommit"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := games.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, games, _, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID string
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := games.Create(ctx, sampleGame("TxRollback"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := games.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("game_with_reviews_needs_cascade", func(t *testing.T) {
		tx, games, reviews, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g, err := games.Create(ctx, sampleGame("Cascade"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		for i := 1; i <= 3; i++ {
			if _, err := reviews.Create(ctx, sampleReview(g.ID, i)); err != nil {
				t.Fatalf("seed review: %v", err)
			}
		}

		if err := games.Delete(ctx, g.ID); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict deleting a reviewed game, got %v", err)
		}

		var removed int64
		err = tx.WithinTx(ctx, func(ctx context.Context) error {
			n, err := reviews.DeleteByGame(ctx, g.ID)
			if err != nil {
				return err
			}
			removed = n
			return games.Delete(ctx, g.ID)
		})
		if err != nil {
			t.Fatalf("cascade: %v", err)
		}
		if removed != 3 {
			t.Fatalf("expected 3 reviews removed, got %d", removed)
		}
		if _, err := games.GetByID(ctx, g.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected game gone, got %v", err)
		}
	})

	t.Run("cascade_rollback_restores_reviews", func(t *testing.T) {
		tx, games, reviews, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		g, err := games.Create(ctx, sampleGame("Keep"))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := reviews.Create(ctx, sampleReview(g.ID, 4)); err != nil {
			t.Fatalf("seed review: %v", err)
		}

		errMarker := errors.New("abort")
		err = tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := reviews.DeleteByGame(ctx, g.ID); err != nil {
				return err
			}
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		left, err := reviews.ListByGame(ctx, g.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(left) != 1 {
			t.Fatalf("expected review restored by rollback, got %d", len(left))
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
