package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// Filter values for the library view.
const (
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterPending   = "pending"
)

// Library is the game collection view: a filtered list that is re-fetched after every write.
type Library struct {
	api GamesAPI
	log zerolog.Logger
}

func NewLibrary(api GamesAPI, logger zerolog.Logger) *Library {
	return &Library{api: api, log: logger.With().Str("module", "tracker").Str("component", "library").Logger()}
}

// Load fetches the games matching filter (all|completed|pending, empty means all).
func (l *Library) Load(ctx context.Context, filter string) ([]model.Game, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterAll
	}
	switch filter {
	case FilterAll, FilterCompleted, FilterPending:
	default:
		return nil, fmt.Errorf("unknown filter %q (want all, completed or pending)", filter)
	}
	games, err := l.api.ListGames(ctx, filter)
	if err != nil {
		l.log.Error().Err(err).Str("filter", filter).Msg("load games failed")
		return nil, err
	}
	return games, nil
}

// SetCompleted flips the completion flag and re-fetches the filtered list.
func (l *Library) SetCompleted(ctx context.Context, id string, completed bool, filter string) ([]model.Game, Notice) {
	if _, err := l.api.UpdateGame(ctx, id, model.GameInput{Completed: model.Ptr(completed)}); err != nil {
		l.log.Error().Err(err).Str("game_id", id).Msg("update status failed")
		return l.refetch(ctx, filter, failure("Failed to update game status"))
	}
	msg := "Game marked as pending"
	if completed {
		msg = "Game marked as completed"
	}
	return l.refetch(ctx, filter, success(msg))
}

// Save creates the game when id is empty, otherwise updates it, then re-fetches.
func (l *Library) Save(ctx context.Context, id string, in model.GameInput, filter string) ([]model.Game, Notice) {
	var err error
	msg := "Game added"
	if id == "" {
		_, err = l.api.CreateGame(ctx, in)
	} else {
		msg = "Game updated"
		_, err = l.api.UpdateGame(ctx, id, in)
	}
	if err != nil {
		l.log.Error().Err(err).Str("game_id", id).Msg("save game failed")
		return l.refetch(ctx, filter, failure(fmt.Sprintf("Failed to save game: %v", err)))
	}
	return l.refetch(ctx, filter, success(msg))
}

// Delete removes the game (and, server side, its reviews) then re-fetches.
func (l *Library) Delete(ctx context.Context, id string, filter string) ([]model.Game, Notice) {
	res, err := l.api.DeleteGame(ctx, id)
	if err != nil {
		l.log.Error().Err(err).Str("game_id", id).Msg("delete game failed")
		return l.refetch(ctx, filter, failure("Failed to delete game"))
	}
	msg := "Game deleted."
	if res.DeletedReviews > 0 {
		msg = fmt.Sprintf("Game deleted. Also removed %d review(s).", res.DeletedReviews)
	}
	return l.refetch(ctx, filter, success(msg))
}

// refetch reloads authoritative state after every write attempt, failed or not.
// A failed reload after a successful write turns the notice into an error.
func (l *Library) refetch(ctx context.Context, filter string, n Notice) ([]model.Game, Notice) {
	games, err := l.Load(ctx, filter)
	if err != nil {
		if n.IsError() {
			return nil, n
		}
		return nil, failure(n.Text + " but reloading the library failed")
	}
	return games, n
}
