package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// ListGames returns games in creation order. status is all|completed|pending; empty means all.
func (c *Client) ListGames(ctx context.Context, status string) ([]model.Game, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var out []model.Game
	if err := c.do(ctx, http.MethodGet, "/games", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetGame(ctx context.Context, id string) (model.Game, error) {
	var out model.Game
	err := c.do(ctx, http.MethodGet, "/games/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateGame(ctx context.Context, in model.GameInput) (model.Game, error) {
	var out model.Game
	err := c.do(ctx, http.MethodPost, "/games", nil, in, &out)
	return out, err
}

// UpdateGame sends only the fields set in in; the server keeps the rest.
func (c *Client) UpdateGame(ctx context.Context, id string, in model.GameInput) (model.Game, error) {
	var out model.Game
	err := c.do(ctx, http.MethodPut, "/games/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

// DeleteGame removes a game; the result carries the number of reviews deleted with it.
func (c *Client) DeleteGame(ctx context.Context, id string) (model.DeleteGameResult, error) {
	var out model.DeleteGameResult
	err := c.do(ctx, http.MethodDelete, "/games/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}
