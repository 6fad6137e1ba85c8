package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

type reviewService struct {
	reviews repository.ReviewRepository
	games   repository.GameRepository
	log     zerolog.Logger
}

func NewReviewService(reviews repository.ReviewRepository, games repository.GameRepository, logger zerolog.Logger) ReviewService {
	l := logger.With().Str("module", "service").Str("component", "review").Logger()
	return &reviewService{reviews: reviews, games: games, log: l}
}

func (s *reviewService) CreateReview(ctx context.Context, in model.ReviewInput) (model.Review, error) {
	r := model.Review{
		Game:           model.RefID(trimmed(in.GameID)),
		Text:           trimmed(in.Text),
		Difficulty:     model.DifficultyNormal,
		WouldRecommend: true,
	}
	if in.Score != nil {
		r.Score = *in.Score
	}
	if in.HoursPlayed != nil {
		r.HoursPlayed = *in.HoursPlayed
	}
	if d := trimmed(in.Difficulty); d != "" {
		r.Difficulty = model.Difficulty(d)
	}
	if in.WouldRecommend != nil {
		r.WouldRecommend = *in.WouldRecommend
	}

	if err := newInvalidInput(validateReview(r)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("review validation failed (structure)")
		return model.Review{}, err
	}

	// The referenced game must exist at creation time.
	if _, err := s.games.GetByID(ctx, r.GameID()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Review{}, newInvalidInput([]FieldError{{Field: "game_id", Message: "game does not exist"}})
		}
		return model.Review{}, err
	}

	out, err := s.reviews.Create(ctx, r)
	if err != nil {
		// the game vanished between the check and the insert
		if errors.Is(err, repository.ErrConflict) {
			return model.Review{}, newInvalidInput([]FieldError{{Field: "game_id", Message: "game does not exist"}})
		}
		s.log.Error().Err(err).Str("game_id", r.GameID()).Msg("create review failed")
		return model.Review{}, err
	}
	s.log.Info().Str("review_id", out.ID).Str("game_id", out.GameID()).Int("score", out.Score).Msg("review created")
	return out, nil
}

func (s *reviewService) GetReview(ctx context.Context, id string, expand bool) (model.Review, error) {
	if id == "" {
		return model.Review{}, newInvalidInput([]FieldError{{Field: "id", Message: "is required"}})
	}
	r, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return model.Review{}, err
	}
	if !expand {
		return r, nil
	}
	out, err := s.expand(ctx, []model.Review{r})
	if err != nil {
		return model.Review{}, err
	}
	return out[0], nil
}

func (s *reviewService) ListReviews(ctx context.Context, expand bool) ([]model.Review, error) {
	res, err := s.reviews.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list reviews failed")
		return nil, err
	}
	if !expand {
		return res, nil
	}
	return s.expand(ctx, res)
}

func (s *reviewService) ListReviewsByGame(ctx context.Context, gameID string, expand bool) ([]model.Review, error) {
	if gameID == "" {
		return nil, newInvalidInput([]FieldError{{Field: "game_id", Message: "is required"}})
	}
	res, err := s.reviews.ListByGame(ctx, gameID)
	if err != nil {
		s.log.Error().Err(err).Str("game_id", gameID).Msg("list reviews by game failed")
		return nil, err
	}
	if !expand {
		return res, nil
	}
	return s.expand(ctx, res)
}

func (s *reviewService) UpdateReview(ctx context.Context, id string, in model.ReviewInput) (model.Review, error) {
	if id == "" {
		return model.Review{}, newInvalidInput([]FieldError{{Field: "id", Message: "is required"}})
	}
	cur, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return model.Review{}, err
	}

	var ferrs []FieldError
	if g := trimmed(in.GameID); g != "" && g != cur.GameID() {
		ferrs = append(ferrs, FieldError{Field: "game_id", Message: "cannot be changed"})
	}
	if in.Score != nil {
		cur.Score = *in.Score
	}
	if in.Text != nil {
		cur.Text = trimmed(in.Text)
	}
	if in.HoursPlayed != nil {
		cur.HoursPlayed = *in.HoursPlayed
	}
	if in.Difficulty != nil {
		cur.Difficulty = model.Difficulty(trimmed(in.Difficulty))
	}
	if in.WouldRecommend != nil {
		cur.WouldRecommend = *in.WouldRecommend
	}
	ferrs = append(ferrs, validateReview(cur)...)

	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("review_id", id).Interface("field_errors", ferrs).Msg("review update validation failed")
		return model.Review{}, err
	}

	out, err := s.reviews.Update(ctx, cur)
	if err != nil {
		s.log.Error().Err(err).Str("review_id", id).Msg("update review failed")
		return model.Review{}, err
	}
	return out, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, id string) error {
	if id == "" {
		return newInvalidInput([]FieldError{{Field: "id", Message: "is required"}})
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("review_id", id).Msg("review deleted")
	return nil
}

// expand swaps bare references for embedded games. Unresolvable ids stay bare.
func (s *reviewService) expand(ctx context.Context, reviews []model.Review) ([]model.Review, error) {
	games, err := s.games.List(ctx, model.GameFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}
	out := make([]model.Review, len(reviews))
	for i, r := range reviews {
		if g, ok := byID[r.GameID()]; ok {
			r.Game = model.RefGame(g)
		}
		out[i] = r
	}
	return out, nil
}
