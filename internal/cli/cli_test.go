package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/game-tracker-service/internal/cli"
	"github.com/maxviazov/game-tracker-service/internal/handler"
	"github.com/maxviazov/game-tracker-service/internal/repository/memory"
	"github.com/maxviazov/game-tracker-service/internal/service"
)

func newGateway(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zerolog.New(io.Discard)
	games, reviews, tx, pinger := memory.NewStore().Repositories()
	r := gin.New()
	handler.Register(r, pinger,
		service.NewGameService(games, reviews, tx, logger),
		service.NewReviewService(reviews, games, logger),
		service.NewStatsService(games, reviews, logger),
	)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL + handler.APIPrefix
}

func run(t *testing.T, base string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cli.NewRootCommand(&out, &errOut)
	root.SetArgs(append([]string{"--gateway", base}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// firstID pulls the id column of the first data row of a table.
func firstID(t *testing.T, table string) string {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(table), "\n")
	require.GreaterOrEqual(t, len(lines), 2, table)
	return strings.Fields(lines[len(lines)-1])[0]
}

func TestCLI_GameAndReviewFlow(t *testing.T) {
	base := newGateway(t)

	out, _, err := run(t, base, "games", "add", "--title", "Hades", "--genre", "RPG", "--platform", "PC")
	require.NoError(t, err)
	assert.Contains(t, out, "Game added")
	assert.Contains(t, out, "Hades")
	gameID := firstID(t, out)

	out, _, err = run(t, base, "reviews", "add", "--game", gameID, "--score", "5", "--text", "one more run", "--hours", "12.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Review added")
	assert.Contains(t, out, "12.5")

	out, _, err = run(t, base, "reviews", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Hades")

	out, _, err = run(t, base, "games", "complete", gameID)
	require.NoError(t, err)
	assert.Contains(t, out, "Game marked as completed")

	out, _, err = run(t, base, "games", "list", "--status", "pending")
	require.NoError(t, err)
	assert.NotContains(t, out, "Hades")

	out, _, err = run(t, base, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Favorite genre")
	assert.Contains(t, out, "RPG")
	assert.Contains(t, out, "5.0")

	out, _, err = run(t, base, "stats", "--server")
	require.NoError(t, err)
	assert.Contains(t, out, "Hades")

	out, _, err = run(t, base, "games", "delete", gameID)
	require.NoError(t, err)
	assert.Contains(t, out, "Game deleted. Also removed 1 review(s).")
}

func TestCLI_ValidationFailurePrintsNotice(t *testing.T) {
	base := newGateway(t)

	out, errOut, err := run(t, base, "games", "add", "--title", "Nope", "--genre", "MOBA", "--platform", "PC")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrReported))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "genre")
}

func TestCLI_UnreachableGateway(t *testing.T) {
	srv := httptest.NewServer(nil)
	base := srv.URL + "/api"
	srv.Close()

	_, errOut, err := run(t, base, "stats")
	require.ErrorIs(t, err, cli.ErrReported)
	assert.Equal(t, 1, strings.Count(errOut, "error:"), "one notice, no retries")
}

func TestCLI_Enums(t *testing.T) {
	var out bytes.Buffer
	root := cli.NewRootCommand(&out, io.Discard)
	root.SetArgs([]string{"--gateway", "not a url", "enums"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "platform\tXbox Series X/S")
	assert.Contains(t, out.String(), "difficulty\tHard")
}

func TestCLI_BadGatewayURL(t *testing.T) {
	_, _, err := run(t, "localhost:5000", "games", "list")
	require.Error(t, err)
	assert.False(t, errors.Is(err, cli.ErrReported))
}

func TestCLI_UpdateCommands(t *testing.T) {
	base := newGateway(t)

	out, _, err := run(t, base, "games", "add", "--title", "Celeste", "--genre", "Puzzle", "--platform", "PC")
	require.NoError(t, err)
	celeste := firstID(t, out)
	out, _, err = run(t, base, "games", "add", "--title", "Tunic", "--genre", "Adventure", "--platform", "PC")
	require.NoError(t, err)
	tunic := firstID(t, out)

	out, _, err = run(t, base, "games", "update", celeste, "--developer", "Maddy Makes Games", "--completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Game updated")
	assert.Contains(t, out, "Celeste", "unset flags keep the stored title")

	out, _, err = run(t, base, "games", "list", "--status", "completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Celeste")
	assert.NotContains(t, out, "Tunic")

	out, _, err = run(t, base, "reviews", "add", "--game", celeste, "--score", "4", "--text", "tight controls")
	require.NoError(t, err)
	reviewID := firstID(t, out)

	out, _, err = run(t, base, "reviews", "update", reviewID, "--text", "changed my mind")
	require.NoError(t, err)
	assert.Contains(t, out, "Review updated")
	assert.Contains(t, out, "changed my mind")
	assert.NotContains(t, out, "tight controls")

	out, errOut, err := run(t, base, "reviews", "update", reviewID, "--game", tunic)
	require.ErrorIs(t, err, cli.ErrReported)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "game_id")
	assert.Contains(t, errOut, "cannot be changed")
}
