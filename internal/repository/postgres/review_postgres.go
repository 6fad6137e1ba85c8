package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

const reviewColumns = `id, game_id, score, text, hours_played, difficulty, would_recommend, created_at, updated_at`

type reviewRepository struct{ pool *pgxpool.Pool }

func NewReviewRepository(pool *pgxpool.Pool) repository.ReviewRepository {
	return &reviewRepository{pool: pool}
}

func scanReview(row pgx.Row) (model.Review, error) {
	var (
		out    model.Review
		gameID string
	)
	err := row.Scan(&out.ID, &gameID, &out.Score, &out.Text, &out.HoursPlayed, &out.Difficulty,
		&out.WouldRecommend, &out.CreatedAt, &out.UpdatedAt)
	out.Game = model.RefID(gameID)
	return out, err
}

func (r *reviewRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Review{}, err
	}
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO reviews (id, game_id, score, text, hours_played, difficulty, would_recommend)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+reviewColumns,
		rv.ID, rv.GameID(), rv.Score, rv.Text, rv.HoursPlayed, rv.Difficulty, rv.WouldRecommend,
	)
	out, err := scanReview(row)
	if err != nil {
		return model.Review{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (model.Review, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Review{}, err
	}
	out, err := scanReview(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Review{}, repository.ErrNotFound
		}
		return model.Review{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY seq`)
}

func (r *reviewRepository) ListByGame(ctx context.Context, gameID string) ([]model.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE game_id = $1 ORDER BY seq`, gameID)
}

func (r *reviewRepository) list(ctx context.Context, sql string, args ...any) ([]model.Review, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

func (r *reviewRepository) Update(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Review{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE reviews
		 SET score = $2, text = $3, hours_played = $4, difficulty = $5, would_recommend = $6, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+reviewColumns,
		rv.ID, rv.Score, rv.Text, rv.HoursPlayed, rv.Difficulty, rv.WouldRecommend,
	)
	out, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Review{}, repository.ErrNotFound
		}
		return model.Review{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM reviews WHERE game_id = $1`, gameID)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.ReviewRepository = (*reviewRepository)(nil)
