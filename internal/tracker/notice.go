// Package tracker implements the view-layer flows on top of the gateway:
// fetch, write then re-fetch, and fetch-barrier-aggregate for statistics.
// Every flow reports its outcome as a single Notice; nothing is retried.
package tracker

import (
	"context"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// NoticeKind classifies a user-facing notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the transient message shown after a user action.
type Notice struct {
	Kind NoticeKind
	Text string
}

func (n Notice) IsError() bool { return n.Kind == NoticeError }

func success(text string) Notice { return Notice{Kind: NoticeSuccess, Text: text} }
func failure(text string) Notice { return Notice{Kind: NoticeError, Text: text} }

// GamesAPI is the part of the gateway the game flows need.
type GamesAPI interface {
	ListGames(ctx context.Context, status string) ([]model.Game, error)
	CreateGame(ctx context.Context, in model.GameInput) (model.Game, error)
	UpdateGame(ctx context.Context, id string, in model.GameInput) (model.Game, error)
	DeleteGame(ctx context.Context, id string) (model.DeleteGameResult, error)
}

// ReviewsAPI is the part of the gateway the review flows need.
type ReviewsAPI interface {
	ListReviews(ctx context.Context, expand bool) ([]model.Review, error)
	ListReviewsByGame(ctx context.Context, gameID string, expand bool) ([]model.Review, error)
	CreateReview(ctx context.Context, in model.ReviewInput) (model.Review, error)
	UpdateReview(ctx context.Context, id string, in model.ReviewInput) (model.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// Gateway is everything the tracker flows use.
type Gateway interface {
	GamesAPI
	ReviewsAPI
}
