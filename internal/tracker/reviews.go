package tracker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// UnknownGame labels a review whose game cannot be resolved.
const UnknownGame = "Unknown game"

// ReviewRow is a review paired with the title of its game.
type ReviewRow struct {
	model.Review
	GameTitle string
}

// Reviews is the review list view.
type Reviews struct {
	api Gateway
	log zerolog.Logger
}

func NewReviews(api Gateway, logger zerolog.Logger) *Reviews {
	return &Reviews{api: api, log: logger.With().Str("module", "tracker").Str("component", "reviews").Logger()}
}

// Load fetches reviews (all, or one game's when gameID is set) and the games
// concurrently, then resolves each review's game title.
func (r *Reviews) Load(ctx context.Context, gameID string) ([]ReviewRow, error) {
	var (
		reviews []model.Review
		games   []model.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if gameID != "" {
			reviews, err = r.api.ListReviewsByGame(gctx, gameID, false)
		} else {
			reviews, err = r.api.ListReviews(gctx, false)
		}
		return err
	})
	g.Go(func() error {
		var err error
		games, err = r.api.ListGames(gctx, FilterAll)
		return err
	})
	if err := g.Wait(); err != nil {
		r.log.Error().Err(err).Msg("load reviews failed")
		return nil, err
	}

	titles := make(map[string]string, len(games))
	for _, gm := range games {
		titles[gm.ID] = gm.Title
	}
	rows := make([]ReviewRow, 0, len(reviews))
	for _, rv := range reviews {
		title := UnknownGame
		if embedded, ok := rv.Game.Expanded(); ok && embedded.Title != "" {
			title = embedded.Title
		} else if t, ok := titles[rv.GameID()]; ok {
			title = t
		}
		rows = append(rows, ReviewRow{Review: rv, GameTitle: title})
	}
	return rows, nil
}

// Create writes a new review and re-fetches the list.
func (r *Reviews) Create(ctx context.Context, in model.ReviewInput, gameID string) ([]ReviewRow, Notice) {
	if _, err := r.api.CreateReview(ctx, in); err != nil {
		r.log.Error().Err(err).Msg("create review failed")
		return r.refetch(ctx, gameID, failure(fmt.Sprintf("Failed to save review: %v", err)))
	}
	return r.refetch(ctx, gameID, success("Review added"))
}

// Update changes an existing review and re-fetches the list.
func (r *Reviews) Update(ctx context.Context, id string, in model.ReviewInput, gameID string) ([]ReviewRow, Notice) {
	if _, err := r.api.UpdateReview(ctx, id, in); err != nil {
		r.log.Error().Err(err).Str("review_id", id).Msg("update review failed")
		return r.refetch(ctx, gameID, failure(fmt.Sprintf("Failed to save review: %v", err)))
	}
	return r.refetch(ctx, gameID, success("Review updated"))
}

// Delete removes a review and re-fetches the list.
func (r *Reviews) Delete(ctx context.Context, id string, gameID string) ([]ReviewRow, Notice) {
	if err := r.api.DeleteReview(ctx, id); err != nil {
		r.log.Error().Err(err).Str("review_id", id).Msg("delete review failed")
		return r.refetch(ctx, gameID, failure("Failed to delete review"))
	}
	return r.refetch(ctx, gameID, success("Review deleted"))
}

// refetch reloads the list after every write attempt, failed or not.
func (r *Reviews) refetch(ctx context.Context, gameID string, n Notice) ([]ReviewRow, Notice) {
	rows, err := r.Load(ctx, gameID)
	if err != nil {
		if n.IsError() {
			return nil, n
		}
		return nil, failure(n.Text + " but reloading reviews failed")
	}
	return rows, n
}
