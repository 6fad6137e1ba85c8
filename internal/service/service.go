// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError lets the transport layer report request-shape problems
// (malformed JSON, bad query params) with the same envelope as domain validation.
func NewInvalidInputError(fe ...FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// GameService defines library use cases.
type GameService interface {
	CreateGame(ctx context.Context, in model.GameInput) (model.Game, error)
	GetGame(ctx context.Context, id string) (model.Game, error)
	// ListGames accepts status all|completed|pending; empty means all.
	ListGames(ctx context.Context, status string) ([]model.Game, error)
	// UpdateGame merges provided fields into the stored game and revalidates the result.
	UpdateGame(ctx context.Context, id string, in model.GameInput) (model.Game, error)
	// DeleteGame removes the game and all of its reviews in one transaction.
	DeleteGame(ctx context.Context, id string) (model.DeleteGameResult, error)
}

// ReviewService defines review use cases. expand embeds the game object
// in each review's game reference when the game can be resolved.
type ReviewService interface {
	CreateReview(ctx context.Context, in model.ReviewInput) (model.Review, error)
	GetReview(ctx context.Context, id string, expand bool) (model.Review, error)
	ListReviews(ctx context.Context, expand bool) ([]model.Review, error)
	ListReviewsByGame(ctx context.Context, gameID string, expand bool) ([]model.Review, error)
	UpdateReview(ctx context.Context, id string, in model.ReviewInput) (model.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// StatsService computes collection statistics.
type StatsService interface {
	Summary(ctx context.Context) (model.StatisticsSummary, error)
}
