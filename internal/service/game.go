package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

type gameService struct {
	games   repository.GameRepository
	reviews repository.ReviewRepository
	tx      repository.TxManager
	log     zerolog.Logger
	now     func() time.Time
}

func NewGameService(games repository.GameRepository, reviews repository.ReviewRepository, tx repository.TxManager, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, reviews: reviews, tx: tx, log: l, now: time.Now}
}

func (s *gameService) CreateGame(ctx context.Context, in model.GameInput) (model.Game, error) {
	g := model.Game{
		Title:         trimmed(in.Title),
		Genre:         model.Genre(trimmed(in.Genre)),
		Platform:      model.Platform(trimmed(in.Platform)),
		ReleaseYear:   s.now().Year(),
		Developer:     trimmed(in.Developer),
		CoverImageURL: trimmed(in.CoverImageURL),
		Description:   trimmed(in.Description),
	}
	if in.ReleaseYear != nil {
		g.ReleaseYear = *in.ReleaseYear
	}
	if in.Completed != nil {
		g.Completed = *in.Completed
	}
	if g.CoverImageURL == "" {
		g.CoverImageURL = model.DefaultCoverImageURL
	}
	if g.Description == "" {
		g.Description = model.DefaultDescription
	}

	// Validate before touching storage.
	if err := newInvalidInput(validateGame(g, s.now().Year())); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("game validation failed")
		return model.Game{}, err
	}

	out, err := s.games.Create(ctx, g)
	if err != nil {
		s.log.Error().Err(err).Str("title", g.Title).Msg("create game failed")
		return model.Game{}, err
	}
	s.log.Info().Str("game_id", out.ID).Str("title", out.Title).Msg("game created")
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id string) (model.Game, error) {
	if id == "" {
		return model.Game{}, newInvalidInput([]FieldError{{Field: "id", Message: "is required"}})
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) ListGames(ctx context.Context, status string) ([]model.Game, error) {
	filter, ok := parseStatus(status)
	if !ok {
		return nil, newInvalidInput([]FieldError{{Field: "status", Message: "must be one of all|completed|pending"}})
	}
	res, err := s.games.List(ctx, filter)
	if err != nil {
		s.log.Error().Err(err).Str("status", status).Msg("list games failed")
		return nil, err
	}
	return res, nil
}

func (s *gameService) UpdateGame(ctx context.Context, id string, in model.GameInput) (model.Game, error) {
	if id == "" {
		return model.Game{}, newInvalidInput([]FieldError{{Field: "id", Message: "is required"}})
	}
	cur, err := s.games.GetByID(ctx, id)
	if err != nil {
		return model.Game{}, err
	}

	if in.Title != nil {
		cur.Title = trimmed(in.Title)
	}
	if in.Genre != nil {
		cur.Genre = model.Genre(trimmed(in.Genre))
	}
	if in.Platform != nil {
		cur.Platform = model.Platform(trimmed(in.Platform))
	}
	if in.ReleaseYear != nil {
		cur.ReleaseYear = *in.ReleaseYear
	}
	if in.Developer != nil {
		cur.Developer = trimmed(in.Developer)
	}
	if in.CoverImageURL != nil {
		cur.CoverImageURL = trimmed(in.CoverImageURL)
	}
	if in.Description != nil {
		cur.Description = trimmed(in.Description)
	}
	if in.Completed != nil {
		cur.Completed = *in.Completed
	}

	if err := newInvalidInput(validateGame(cur, s.now().Year())); err != nil {
		s.log.Debug().Str("game_id", id).Interface("field_errors", FieldErrors(err)).Msg("game update validation failed")
		return model.Game{}, err
	}

	out, err := s.games.Update(ctx, cur)
	if err != nil {
		s.log.Error().Err(err).Str("game_id", id).Msg("update game failed")
		return model.Game{}, err
	}
	return out, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id string) (model.DeleteGameResult, error) {
	if id == "" {
		return model.DeleteGameResult{}, newInvalidInput([]FieldError{{Field: "id", Message: "is required"}})
	}

	var removed int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.games.GetByID(ctx, id); err != nil {
			return err
		}
		n, err := s.reviews.DeleteByGame(ctx, id)
		if err != nil {
			return err
		}
		removed = n
		return s.games.Delete(ctx, id)
	})
	if err != nil {
		s.log.Error().Err(err).Str("game_id", id).Msg("delete game failed")
		return model.DeleteGameResult{}, err
	}

	s.log.Info().Str("game_id", id).Int64("deleted_reviews", removed).Msg("game deleted")
	return model.DeleteGameResult{
		Message:        fmt.Sprintf("Game deleted along with %d review(s)", removed),
		DeletedReviews: removed,
	}, nil
}
