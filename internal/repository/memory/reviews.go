package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

// reviewRow stores the normalized game id rather than a GameRef.
type reviewRow struct {
	id             string
	gameID         string
	score          int
	text           string
	hoursPlayed    float64
	difficulty     model.Difficulty
	wouldRecommend bool
	createdAt      time.Time
	updatedAt      time.Time
}

func toReviewRow(r model.Review) reviewRow {
	return reviewRow{
		id:             r.ID,
		gameID:         r.GameID(),
		score:          r.Score,
		text:           r.Text,
		hoursPlayed:    r.HoursPlayed,
		difficulty:     r.Difficulty,
		wouldRecommend: r.WouldRecommend,
		createdAt:      r.CreatedAt,
		updatedAt:      r.UpdatedAt,
	}
}

func (row reviewRow) model() model.Review {
	return model.Review{
		ID:             row.id,
		Game:           model.RefID(row.gameID),
		Score:          row.score,
		Text:           row.text,
		HoursPlayed:    row.hoursPlayed,
		Difficulty:     row.difficulty,
		WouldRecommend: row.wouldRecommend,
		CreatedAt:      row.createdAt,
		UpdatedAt:      row.updatedAt,
	}
}

type reviewRepository struct{ s *Store }

func (s *Store) reviewIndex(id string) int {
	return slices.IndexFunc(s.reviews, func(rv reviewRow) bool { return rv.id == id })
}

func (r *reviewRepository) Create(_ context.Context, rv model.Review) (model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	if r.s.reviewIndex(rv.ID) >= 0 {
		return model.Review{}, repository.ErrAlreadyExists
	}
	if r.s.gameIndex(rv.GameID()) < 0 {
		return model.Review{}, repository.ErrConflict
	}
	row := toReviewRow(rv)
	row.createdAt = r.s.now()
	row.updatedAt = row.createdAt
	r.s.reviews = append(r.s.reviews, row)
	return row.model(), nil
}

func (r *reviewRepository) GetByID(_ context.Context, id string) (model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := r.s.reviewIndex(id)
	if i < 0 {
		return model.Review{}, repository.ErrNotFound
	}
	return r.s.reviews[i].model(), nil
}

func (r *reviewRepository) List(context.Context) ([]model.Review, error) {
	return r.filter(func(reviewRow) bool { return true }), nil
}

func (r *reviewRepository) ListByGame(_ context.Context, gameID string) ([]model.Review, error) {
	return r.filter(func(row reviewRow) bool { return row.gameID == gameID }), nil
}

func (r *reviewRepository) filter(keep func(reviewRow) bool) []model.Review {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]model.Review, 0, len(r.s.reviews))
	for _, row := range r.s.reviews {
		if keep(row) {
			out = append(out, row.model())
		}
	}
	return out
}

func (r *reviewRepository) Update(_ context.Context, rv model.Review) (model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.reviewIndex(rv.ID)
	if i < 0 {
		return model.Review{}, repository.ErrNotFound
	}
	cur := r.s.reviews[i]
	cur.score = rv.Score
	cur.text = rv.Text
	cur.hoursPlayed = rv.HoursPlayed
	cur.difficulty = rv.Difficulty
	cur.wouldRecommend = rv.WouldRecommend
	cur.updatedAt = r.s.now()
	r.s.reviews[i] = cur
	return cur.model(), nil
}

func (r *reviewRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.reviewIndex(id)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.s.reviews = slices.Delete(r.s.reviews, i, i+1)
	return nil
}

func (r *reviewRepository) DeleteByGame(_ context.Context, gameID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	before := len(r.s.reviews)
	r.s.reviews = slices.DeleteFunc(r.s.reviews, func(row reviewRow) bool { return row.gameID == gameID })
	return int64(before - len(r.s.reviews)), nil
}

var _ repository.ReviewRepository = (*reviewRepository)(nil)
