package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

type gameRow = model.Game

type gameRepository struct{ s *Store }

func (s *Store) gameIndex(id string) int {
	return slices.IndexFunc(s.games, func(g gameRow) bool { return g.ID == id })
}

func (r *gameRepository) Create(_ context.Context, g model.Game) (model.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if r.s.gameIndex(g.ID) >= 0 {
		return model.Game{}, repository.ErrAlreadyExists
	}
	now := r.s.now()
	g.CreatedAt, g.UpdatedAt = now, now
	r.s.games = append(r.s.games, g)
	return g, nil
}

func (r *gameRepository) GetByID(_ context.Context, id string) (model.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.gameIndex(id)
	if i < 0 {
		return model.Game{}, repository.ErrNotFound
	}
	return r.s.games[i], nil
}

func (r *gameRepository) List(_ context.Context, f model.GameFilter) ([]model.Game, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Game, 0, len(r.s.games))
	for _, g := range r.s.games {
		if f.Completed != nil && g.Completed != *f.Completed {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (r *gameRepository) Update(_ context.Context, g model.Game) (model.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.gameIndex(g.ID)
	if i < 0 {
		return model.Game{}, repository.ErrNotFound
	}
	g.CreatedAt = r.s.games[i].CreatedAt
	g.UpdatedAt = r.s.now()
	r.s.games[i] = g
	return g, nil
}

func (r *gameRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.gameIndex(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	// same rule as the SQL foreign key
	if slices.ContainsFunc(r.s.reviews, func(rv reviewRow) bool { return rv.gameID == id }) {
		return repository.ErrConflict
	}
	r.s.games = slices.Delete(r.s.games, i, i+1)
	return nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
