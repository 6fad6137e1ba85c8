package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
	"github.com/maxviazov/game-tracker-service/internal/service"
)

func seedGame(t *testing.T, s services, title string) model.Game {
	t.Helper()
	g, err := s.games.CreateGame(context.Background(), validGame(title))
	require.NoError(t, err)
	return g
}

func TestReviewService_CreateReview_Validation(t *testing.T) {
	s := newServices(t)
	g := seedGame(t, s, "Hades")

	cases := []struct {
		name  string
		in    model.ReviewInput
		field string
	}{
		{"missing game", model.ReviewInput{Score: model.Ptr(3), Text: model.Ptr("x")}, "game_id"},
		{"unknown game", model.ReviewInput{GameID: model.Ptr("nope"), Score: model.Ptr(3), Text: model.Ptr("x")}, "game_id"},
		{"score low", model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(0), Text: model.Ptr("x")}, "score"},
		{"score high", model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(6), Text: model.Ptr("x")}, "score"},
		{"missing score", model.ReviewInput{GameID: model.Ptr(g.ID), Text: model.Ptr("x")}, "score"},
		{"blank text", model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(3), Text: model.Ptr("  ")}, "text"},
		{"negative hours", model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(3), Text: model.Ptr("x"), HoursPlayed: model.Ptr(-1.0)}, "hours_played"},
		{"bad difficulty", model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(3), Text: model.Ptr("x"), Difficulty: model.Ptr("Nightmare")}, "difficulty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.reviews.CreateReview(context.Background(), tc.in)
			if !errors.Is(err, service.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
			if !hasField(err, tc.field) {
				t.Fatalf("expected field %s in %+v", tc.field, service.FieldErrors(err))
			}
		})
	}
}

func TestReviewService_CreateReview_Defaults(t *testing.T) {
	s := newServices(t)
	g := seedGame(t, s, "Hades")

	r, err := s.reviews.CreateReview(context.Background(), model.ReviewInput{
		GameID: model.Ptr(g.ID), Score: model.Ptr(5), Text: model.Ptr(" great run "),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, g.ID, r.GameID())
	assert.Equal(t, "great run", r.Text)
	assert.Equal(t, 0.0, r.HoursPlayed)
	assert.Equal(t, model.DifficultyNormal, r.Difficulty)
	assert.True(t, r.WouldRecommend)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestReviewService_Expand(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	g := seedGame(t, s, "Hades")
	r, err := s.reviews.CreateReview(ctx, model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(4), Text: model.Ptr("fun")})
	require.NoError(t, err)

	bare, err := s.reviews.ListReviews(ctx, false)
	require.NoError(t, err)
	require.Len(t, bare, 1)
	_, expanded := bare[0].Game.Expanded()
	assert.False(t, expanded)

	full, err := s.reviews.ListReviews(ctx, true)
	require.NoError(t, err)
	embedded, ok := full[0].Game.Expanded()
	require.True(t, ok)
	assert.Equal(t, "Hades", embedded.Title)
	assert.Equal(t, g.ID, full[0].GameID())

	one, err := s.reviews.GetReview(ctx, r.ID, true)
	require.NoError(t, err)
	_, ok = one.Game.Expanded()
	assert.True(t, ok)

	byGame, err := s.reviews.ListReviewsByGame(ctx, g.ID, true)
	require.NoError(t, err)
	require.Len(t, byGame, 1)
	_, ok = byGame[0].Game.Expanded()
	assert.True(t, ok)
}

func TestReviewService_UpdateReview(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	g1 := seedGame(t, s, "One")
	g2 := seedGame(t, s, "Two")
	r, err := s.reviews.CreateReview(ctx, model.ReviewInput{GameID: model.Ptr(g1.ID), Score: model.Ptr(2), Text: model.Ptr("meh")})
	require.NoError(t, err)

	updated, err := s.reviews.UpdateReview(ctx, r.ID, model.ReviewInput{
		GameID:         model.Ptr(g1.ID),
		Score:          model.Ptr(4),
		WouldRecommend: model.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Score)
	assert.Equal(t, "meh", updated.Text)
	assert.False(t, updated.WouldRecommend)
	assert.Equal(t, g1.ID, updated.GameID())

	_, err = s.reviews.UpdateReview(ctx, r.ID, model.ReviewInput{GameID: model.Ptr(g2.ID)})
	assert.True(t, hasField(err, "game_id"))

	_, err = s.reviews.UpdateReview(ctx, r.ID, model.ReviewInput{Score: model.Ptr(9)})
	assert.True(t, hasField(err, "score"))

	_, err = s.reviews.UpdateReview(ctx, "missing", model.ReviewInput{Score: model.Ptr(3)})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReviewService_DeleteReview(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	g := seedGame(t, s, "One")
	r, err := s.reviews.CreateReview(ctx, model.ReviewInput{GameID: model.Ptr(g.ID), Score: model.Ptr(3), Text: model.Ptr("ok")})
	require.NoError(t, err)

	require.NoError(t, s.reviews.DeleteReview(ctx, r.ID))
	assert.ErrorIs(t, s.reviews.DeleteReview(ctx, r.ID), repository.ErrNotFound)
	assert.True(t, hasField(s.reviews.DeleteReview(ctx, ""), "id"))
}

func TestFieldErrors(t *testing.T) {
	assert.Nil(t, service.FieldErrors(nil))
	assert.Nil(t, service.FieldErrors(errors.New("plain")))
	assert.Nil(t, service.NewInvalidInputError())

	err := service.NewInvalidInputError(service.FieldError{Field: "status", Message: "bad"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	assert.Equal(t, []service.FieldError{{Field: "status", Message: "bad"}}, service.FieldErrors(err))
}
