package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

func expandQuery(expand bool) url.Values {
	if !expand {
		return nil
	}
	return url.Values{"expand": {"game"}}
}

func (c *Client) ListReviews(ctx context.Context, expand bool) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, http.MethodGet, "/reviews", expandQuery(expand), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListReviewsByGame(ctx context.Context, gameID string, expand bool) ([]model.Review, error) {
	var out []model.Review
	if err := c.do(ctx, http.MethodGet, "/reviews/game/"+url.PathEscape(gameID), expandQuery(expand), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetReview(ctx context.Context, id string, expand bool) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(id), expandQuery(expand), nil, &out)
	return out, err
}

func (c *Client) CreateReview(ctx context.Context, in model.ReviewInput) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodPost, "/reviews", nil, in, &out)
	return out, err
}

func (c *Client) UpdateReview(ctx context.Context, id string, in model.ReviewInput) (model.Review, error) {
	var out model.Review
	err := c.do(ctx, http.MethodPut, "/reviews/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(id), nil, nil, nil)
}

// Stats returns the summary computed by the server.
func (c *Client) Stats(ctx context.Context) (model.StatisticsSummary, error) {
	var out model.StatisticsSummary
	err := c.do(ctx, http.MethodGet, "/stats", nil, nil, &out)
	return out, err
}
