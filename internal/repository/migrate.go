package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"github.com/maxviazov/game-tracker-service/migrations"
)

// Goose dialect names; they double as migration directory selectors.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// goose keeps dialect and base FS in package globals.
var gooseMu sync.Mutex

// Migrate applies every embedded migration for the dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect string, logger zerolog.Logger) error {
	dir := "postgres"
	if dialect == DialectSQLite {
		dir = "sqlite"
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// MigratePool runs Migrate through a database/sql view of the pgx pool.
func (r *Repository) MigratePool(ctx context.Context, logger zerolog.Logger) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()
	return Migrate(ctx, db, DialectPostgres, logger)
}

// gooseLogger routes goose progress lines into zerolog at debug level.
type gooseLogger struct{ logger zerolog.Logger }

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.logger.Error().Msgf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.logger.Debug().Msgf(format, v...) }
