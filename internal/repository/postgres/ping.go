package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/game-tracker-service/internal/repository"
)

type pinger struct{ pool *pgxpool.Pool }

// NewPinger reports ready once the pool answers and the games table is reachable,
// i.e. migrations have been applied.
func NewPinger(pool *pgxpool.Pool) repository.Pinger { return &pinger{pool: pool} }

func (p *pinger) Ping(ctx context.Context) error {
	if err := ensurePool(p.pool); err != nil {
		return err
	}
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := p.pool.Exec(ctx, `SELECT 1 FROM games LIMIT 1`); err != nil {
		return fmt.Errorf("postgres schema check: %w", repository.MapPgError(err))
	}
	return nil
}
