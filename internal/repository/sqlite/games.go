package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/repository"
)

const gameColumns = `id, title, genre, platform, release_year, developer, cover_image_url, description, completed, created_at, updated_at`

type gameRepository struct{ db *sql.DB }

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (model.Game, error) {
	var (
		out                  model.Game
		createdAt, updatedAt int64
	)
	err := row.Scan(&out.ID, &out.Title, &out.Genre, &out.Platform, &out.ReleaseYear, &out.Developer,
		&out.CoverImageURL, &out.Description, &out.Completed, &createdAt, &updatedAt)
	if err != nil {
		return model.Game{}, err
	}
	out.CreatedAt = fromMillis(createdAt)
	out.UpdatedAt = fromMillis(updatedAt)
	return out, nil
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	now := nowMillis()
	_, err := getQ(ctx, r.db).ExecContext(ctx,
		`INSERT INTO games (id, title, genre, platform, release_year, developer, cover_image_url, description, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, string(g.Genre), string(g.Platform), g.ReleaseYear, g.Developer, g.CoverImageURL, g.Description, g.Completed, now, now,
	)
	if err != nil {
		return model.Game{}, repository.MapSQLiteError(err)
	}
	g.CreatedAt = fromMillis(now)
	g.UpdatedAt = g.CreatedAt
	return g, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (model.Game, error) {
	out, err := scanGame(getQ(ctx, r.db).QueryRowContext(ctx, `SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapSQLiteError(err)
	}
	return out, nil
}

func (r *gameRepository) List(ctx context.Context, f model.GameFilter) ([]model.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games`
	var args []any
	if f.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, *f.Completed)
	}
	query += ` ORDER BY seq`

	rows, err := getQ(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repository.MapSQLiteError(err)
	}
	defer rows.Close()

	res := make([]model.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, repository.MapSQLiteError(err)
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

func (r *gameRepository) Update(ctx context.Context, g model.Game) (model.Game, error) {
	res, err := getQ(ctx, r.db).ExecContext(ctx,
		`UPDATE games
		 SET title = ?, genre = ?, platform = ?, release_year = ?, developer = ?,
		     cover_image_url = ?, description = ?, completed = ?, updated_at = ?
		 WHERE id = ?`,
		g.Title, string(g.Genre), string(g.Platform), g.ReleaseYear, g.Developer,
		g.CoverImageURL, g.Description, g.Completed, nowMillis(), g.ID,
	)
	if err != nil {
		return model.Game{}, repository.MapSQLiteError(err)
	}
	if err := rowsAffected(res); err != nil {
		return model.Game{}, err
	}
	return r.GetByID(ctx, g.ID)
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	res, err := getQ(ctx, r.db).ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return repository.MapSQLiteError(err)
	}
	return rowsAffected(res)
}

var _ repository.GameRepository = (*gameRepository)(nil)
