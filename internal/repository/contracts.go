package repository

import (
	"context"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// GameRepository declares persistence operations for games.
// I return domain models and surface domain errors from errors.go rather than driver codes.
// Listings come back in creation order, oldest first.
type GameRepository interface {
	// Create assigns ID and timestamps and returns the stored game.
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id string) (model.Game, error)
	List(ctx context.Context, f model.GameFilter) ([]model.Game, error)
	// Update overwrites every mutable field of an existing game.
	Update(ctx context.Context, g model.Game) (model.Game, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository declares persistence operations for reviews.
// Stored reviews always carry a bare game reference; expansion is a service concern.
type ReviewRepository interface {
	Create(ctx context.Context, r model.Review) (model.Review, error)
	GetByID(ctx context.Context, id string) (model.Review, error)
	List(ctx context.Context) ([]model.Review, error)
	ListByGame(ctx context.Context, gameID string) ([]model.Review, error)
	// Update never touches the game reference.
	Update(ctx context.Context, r model.Review) (model.Review, error)
	Delete(ctx context.Context, id string) error
	// DeleteByGame removes every review of a game and reports how many were removed.
	DeleteByGame(ctx context.Context, gameID string) (int64, error)
}
