package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
	"github.com/maxviazov/game-tracker-service/internal/stats"
)

const tracerName = "github.com/maxviazov/game-tracker-service/internal/service"

type statsService struct {
	games   repository.GameRepository
	reviews repository.ReviewRepository
	log     zerolog.Logger
}

func NewStatsService(games repository.GameRepository, reviews repository.ReviewRepository, logger zerolog.Logger) StatsService {
	l := logger.With().Str("module", "service").Str("component", "stats").Logger()
	return &statsService{games: games, reviews: reviews, log: l}
}

// Summary loads both collections concurrently and aggregates only after both
// loads succeed. Any load failure is returned and no summary is computed.
func (s *statsService) Summary(ctx context.Context) (model.StatisticsSummary, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "stats.summary")
	defer span.End()

	var (
		games   []model.Game
		reviews []model.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = s.games.List(gctx, model.GameFilter{})
		if err != nil {
			return fmt.Errorf("load games: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		reviews, err = s.reviews.List(gctx)
		if err != nil {
			return fmt.Errorf("load reviews: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		s.log.Error().Err(err).Msg("statistics load failed")
		return model.StatisticsSummary{}, err
	}

	sum := stats.ComputeSummary(games, reviews)
	span.SetAttributes(
		attribute.Int("stats.total_games", sum.TotalGames),
		attribute.Int("stats.total_reviews", sum.TotalReviews),
		attribute.Int("stats.ranked_games", len(sum.TopRankedGames)),
	)
	s.log.Debug().Int("games", sum.TotalGames).Int("reviews", sum.TotalReviews).Msg("statistics computed")
	return sum, nil
}
