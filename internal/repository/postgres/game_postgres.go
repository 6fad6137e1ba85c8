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

const gameColumns = `id, title, genre, platform, release_year, developer, cover_image_url, description, completed, created_at, updated_at`

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

func scanGame(row pgx.Row) (model.Game, error) {
	var out model.Game
	err := row.Scan(&out.ID, &out.Title, &out.Genre, &out.Platform, &out.ReleaseYear, &out.Developer,
		&out.CoverImageURL, &out.Description, &out.Completed, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO games (id, title, genre, platform, release_year, developer, cover_image_url, description, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+gameColumns,
		g.ID, g.Title, g.Genre, g.Platform, g.ReleaseYear, g.Developer, g.CoverImageURL, g.Description, g.Completed,
	)
	out, err := scanGame(row)
	if err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id string) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	out, err := scanGame(exec.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) List(ctx context.Context, f model.GameFilter) ([]model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	// a NULL filter matches every row
	rows, err := exec.Query(ctx,
		`SELECT `+gameColumns+`
		 FROM games
		 WHERE $1::boolean IS NULL OR completed = $1
		 ORDER BY seq`,
		f.Completed,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]model.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, g)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

func (r *gameRepository) Update(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE games
		 SET title = $2, genre = $3, platform = $4, release_year = $5, developer = $6,
		     cover_image_url = $7, description = $8, completed = $9, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+gameColumns,
		g.ID, g.Title, g.Genre, g.Platform, g.ReleaseYear, g.Developer, g.CoverImageURL, g.Description, g.Completed,
	)
	out, err := scanGame(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Game{}, repository.ErrNotFound
		}
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) Delete(ctx context.Context, id string) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.GameRepository = (*gameRepository)(nil)
