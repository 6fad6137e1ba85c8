package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

const reviewColumns = `id, game_id, score, text, hours_played, difficulty, would_recommend, created_at, updated_at`

type reviewRepository struct{ db *sql.DB }

func scanReview(row scanner) (model.Review, error) {
	var (
		out                  model.Review
		gameID               string
		createdAt, updatedAt int64
	)
	err := row.Scan(&out.ID, &gameID, &out.Score, &out.Text, &out.HoursPlayed, &out.Difficulty,
		&out.WouldRecommend, &createdAt, &updatedAt)
	if err != nil {
		return model.Review{}, err
	}
	out.Game = model.RefID(gameID)
	out.CreatedAt = fromMillis(createdAt)
	out.UpdatedAt = fromMillis(updatedAt)
	return out, nil
}

func (r *reviewRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	now := nowMillis()
	_, err := getQ(ctx, r.db).ExecContext(ctx,
		`INSERT INTO reviews (id, game_id, score, text, hours_played, difficulty, would_recommend, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.GameID(), rv.Score, rv.Text, rv.HoursPlayed, string(rv.Difficulty), rv.WouldRecommend, now, now,
	)
	if err != nil {
		return model.Review{}, repository.MapSQLiteError(err)
	}
	rv.Game = model.RefID(rv.GameID())
	rv.CreatedAt = fromMillis(now)
	rv.UpdatedAt = rv.CreatedAt
	return rv, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (model.Review, error) {
	out, err := scanReview(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Review{}, repository.ErrNotFound
		}
		return model.Review{}, repository.MapSQLiteError(err)
	}
	return out, nil
}

func (r *reviewRepository) List(ctx context.Context) ([]model.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY seq`)
}

func (r *reviewRepository) ListByGame(ctx context.Context, gameID string) ([]model.Review, error) {
	return r.list(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE game_id = ? ORDER BY seq`, gameID)
}

func (r *reviewRepository) list(ctx context.Context, query string, args ...any) ([]model.Review, error) {
	rows, err := getQ(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.MapSQLiteError(err)
	}
	defer rows.Close()

	res := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, repository.MapSQLiteError(err)
		}
		res = append(res, rv)
	}
	return res, rows.Err()
}

func (r *reviewRepository) Update(ctx context.Context, rv model.Review) (model.Review, error) {
	res, err := getQ(ctx, r.db).ExecContext(ctx,
		`UPDATE reviews
		 SET score = ?, text = ?, hours_played = ?, difficulty = ?, would_recommend = ?, updated_at = ?
		 WHERE id = ?`,
		rv.Score, rv.Text, rv.HoursPlayed, string(rv.Difficulty), rv.WouldRecommend, nowMillis(), rv.ID,
	)
	if err != nil {
		return model.Review{}, repository.MapSQLiteError(err)
	}
	if err := rowsAffected(res); err != nil {
		return model.Review{}, err
	}
	return r.GetByID(ctx, rv.ID)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	res, err := getQ(ctx, r.db).ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return repository.MapSQLiteError(err)
	}
	return rowsAffected(res)
}

func (r *reviewRepository) DeleteByGame(ctx context.Context, gameID string) (int64, error) {
	res, err := getQ(ctx, r.db).ExecContext(ctx, `DELETE FROM reviews WHERE game_id = ?`, gameID)
	if err != nil {
		return 0, repository.MapSQLiteError(err)
	}
	return res.RowsAffected()
}

var _ repository.ReviewRepository = (*reviewRepository)(nil)
