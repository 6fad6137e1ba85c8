package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/game-tracker-service/internal/config"
)

func TestMapPgError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, ErrAlreadyExists},
		{"foreign key", fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}), ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapPgError(tc.in))
		})
	}

	other := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	assert.Same(t, other, MapPgError(other))
	plain := errors.New("boom")
	assert.Equal(t, plain, MapSQLiteError(plain))
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresDSN(config.PostgresConfig{
		Host: "db", Port: 5433, User: "tracker", Password: "p@ss word", DBName: "games", SSLMode: "disable",
	})
	assert.Equal(t, "postgres://tracker:p%40ss%20word@db:5433/games?sslmode=disable", dsn)
}

func TestTraceLevel(t *testing.T) {
	assert.Equal(t, tracelog.LogLevelTrace, traceLevel(zerolog.TraceLevel))
	assert.Equal(t, tracelog.LogLevelDebug, traceLevel(zerolog.DebugLevel))
	assert.Equal(t, tracelog.LogLevelInfo, traceLevel(zerolog.InfoLevel))
	assert.Equal(t, tracelog.LogLevelWarn, traceLevel(zerolog.WarnLevel))
	assert.Equal(t, tracelog.LogLevelError, traceLevel(zerolog.ErrorLevel))
}

func TestPgxLogger_TraceFields(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{
		"sql":  "SELECT 1",
		"args": []any{1},
		"time": "1ms",
	})
	out := buf.String()
	assert.Contains(t, out, `"component":"pgx"`)
	assert.Contains(t, out, `"sql":"SELECT 1"`)
	assert.Contains(t, out, `"args":[1]`)
	assert.Contains(t, out, `"time":"1ms"`)

	buf.Reset()
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Empty(t, buf.String())
}
