package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/game-tracker-service/internal/config"
	"github.com/maxviazov/game-tracker-service/internal/repository"
	"github.com/maxviazov/game-tracker-service/internal/repository/memory"
	"github.com/maxviazov/game-tracker-service/internal/repository/postgres"
	"github.com/maxviazov/game-tracker-service/internal/repository/sqlite"
)

// storage bundles the repositories of the configured backend.
type storage struct {
	games   repository.GameRepository
	reviews repository.ReviewRepository
	tx      repository.TxManager
	pinger  repository.Pinger
	close   func()
}

// openStorage connects the backend named by cfg.Storage.Driver and applies migrations.
func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		games, reviews, tx, pinger := memory.NewStore().Repositories()
		return &storage{games: games, reviews: reviews, tx: tx, pinger: pinger, close: func() {}}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Storage.SQLite.Path, logger)
		if err != nil {
			return nil, err
		}
		games, reviews, tx, pinger := store.Repositories()
		return &storage{games: games, reviews: reviews, tx: tx, pinger: pinger, close: func() { _ = store.Close() }}, nil

	case config.DriverPostgres:
		repo, err := repository.New(ctx, cfg, &logger)
		if err != nil {
			return nil, err
		}
		if err := repo.MigratePool(ctx, logger); err != nil {
			repo.Close()
			return nil, err
		}
		pool := repo.Pool()
		return &storage{
			games:   postgres.NewGameRepository(pool),
			reviews: postgres.NewReviewRepository(pool),
			tx:      postgres.NewTxManager(pool),
			pinger:  postgres.NewPinger(pool),
			close:   repo.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
