package tracker

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/stats"
)

// Stats is the statistics view. It aggregates client side from the raw collections.
type Stats struct {
	api Gateway
	log zerolog.Logger
}

func NewStats(api Gateway, logger zerolog.Logger) *Stats {
	return &Stats{api: api, log: logger.With().Str("module", "tracker").Str("component", "stats").Logger()}
}

// Load fetches games and reviews concurrently and computes the summary once both arrived.
// Any failure (or cancellation before the barrier) returns the error and no summary.
func (s *Stats) Load(ctx context.Context) (model.StatisticsSummary, error) {
	var (
		games   []model.Game
		reviews []model.Review
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = s.api.ListGames(gctx, FilterAll)
		return err
	})
	g.Go(func() error {
		var err error
		reviews, err = s.api.ListReviews(gctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("load statistics failed")
		return model.StatisticsSummary{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.StatisticsSummary{}, err
	}
	return stats.ComputeSummary(games, reviews), nil
}
