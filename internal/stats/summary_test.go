package stats_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/game-tracker-service/internal/model"
	"github.com/maxviazov/game-tracker-service/internal/stats"
)

func game(id string, genre model.Genre, platform model.Platform, completed bool) model.Game {
	return model.Game{ID: id, Title: "Game " + id, Genre: genre, Platform: platform, Completed: completed}
}

func review(gameID string, score int, hours float64) model.Review {
	return model.Review{ID: "r-" + gameID, Game: model.RefID(gameID), Score: score, HoursPlayed: hours}
}

func rankedIDs(s model.StatisticsSummary) []string {
	ids := make([]string, 0, len(s.TopRankedGames))
	for _, rg := range s.TopRankedGames {
		ids = append(ids, rg.ID)
	}
	return ids
}

func TestComputeSummary_Empty(t *testing.T) {
	s := stats.ComputeSummary(nil, nil)

	assert.Equal(t, 0, s.TotalGames)
	assert.Equal(t, 0, s.CompletedGames)
	assert.Equal(t, 0, s.PendingGames)
	assert.Equal(t, 0, s.TotalReviews)
	assert.Equal(t, 0.0, s.TotalHoursPlayed)
	assert.Equal(t, 0.0, s.AverageScore)
	assert.Equal(t, model.NotAvailable, s.FavoriteGenre)
	assert.Equal(t, model.NotAvailable, s.FavoritePlatform)
	require.NotNil(t, s.TopRankedGames)
	assert.Empty(t, s.TopRankedGames)
}

func TestComputeSummary_ConcreteScenario(t *testing.T) {
	games := []model.Game{
		game("g1", model.GenreRPG, model.PlatformPC, true),
		game("g2", model.GenreRPG, model.PlatformPC, false),
	}
	reviews := []model.Review{
		review("g1", 5, 0),
		review("g1", 3, 0),
		review("g2", 4, 0),
	}

	s := stats.ComputeSummary(games, reviews)

	assert.Equal(t, 2, s.TotalGames)
	assert.Equal(t, 1, s.CompletedGames)
	assert.Equal(t, 1, s.PendingGames)
	assert.Equal(t, 3, s.TotalReviews)
	assert.Equal(t, 4.0, s.AverageScore)
	assert.Equal(t, "RPG", s.FavoriteGenre)
	assert.Equal(t, "PC", s.FavoritePlatform)
	// Both means are 4.0; the stable sort keeps input order.
	require.Len(t, s.TopRankedGames, 2)
	assert.Equal(t, []string{"g1", "g2"}, rankedIDs(s))
	assert.Equal(t, 4.0, s.TopRankedGames[0].MeanScore)
	assert.Equal(t, 4.0, s.TopRankedGames[1].MeanScore)
}

func TestComputeSummary_CompletedPlusPending(t *testing.T) {
	for n := 0; n < 12; n++ {
		games := make([]model.Game, 0, n)
		for i := 0; i < n; i++ {
			games = append(games, game(fmt.Sprintf("g%d", i), model.GenreAction, model.PlatformPC, i%3 == 0))
		}
		s := stats.ComputeSummary(games, nil)
		assert.Equal(t, s.TotalGames, s.CompletedGames+s.PendingGames, "n=%d", n)
		assert.Equal(t, n, s.TotalGames)
	}
}

func TestComputeSummary_TotalHours(t *testing.T) {
	reviews := []model.Review{review("a", 3, 1.5), review("b", 4, 10), review("c", 5, 0.25)}
	s := stats.ComputeSummary(nil, reviews)
	assert.InDelta(t, 11.75, s.TotalHoursPlayed, 1e-9)
}

func TestComputeSummary_AverageScoreRounding(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"single", []int{3}, 3.0},
		{"two thirds", []int{4, 4, 5}, 4.3},
		{"half up", []int{4, 5, 5, 5}, 4.8},
		{"exact half", []int{1, 2, 2, 2}, 1.8},
		{"upper bound", []int{5, 5}, 5.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reviews := make([]model.Review, 0, len(tc.scores))
			for _, sc := range tc.scores {
				reviews = append(reviews, review("g", sc, 0))
			}
			s := stats.ComputeSummary(nil, reviews)
			assert.Equal(t, tc.want, s.AverageScore)
		})
	}
}

func TestComputeSummary_AverageScoreIsOrderIndependent(t *testing.T) {
	reviews := []model.Review{review("a", 1, 0), review("b", 5, 0), review("c", 4, 0), review("d", 2, 0), review("e", 5, 0)}
	want := stats.ComputeSummary(nil, reviews).AverageScore

	reversed := slices.Clone(reviews)
	slices.Reverse(reversed)
	assert.Equal(t, want, stats.ComputeSummary(nil, reversed).AverageScore)

	rotated := append(slices.Clone(reviews[2:]), reviews[:2]...)
	assert.Equal(t, want, stats.ComputeSummary(nil, rotated).AverageScore)
}

func TestComputeSummary_FavoriteTieBreak(t *testing.T) {
	cases := []struct {
		name   string
		genres []model.Genre
		want   string
	}{
		{"rpg first", []model.Genre{model.GenreRPG, model.GenreRPG, model.GenreAction, model.GenreAction}, "RPG"},
		{"action first", []model.Genre{model.GenreAction, model.GenreAction, model.GenreRPG, model.GenreRPG}, "Action"},
		{"interleaved", []model.Genre{model.GenreAction, model.GenreRPG, model.GenreRPG, model.GenreAction}, "Action"},
		{"strict max wins", []model.Genre{model.GenreAction, model.GenreRPG, model.GenreRPG}, "RPG"},
		{"single", []model.Genre{model.GenreFPS}, "FPS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			games := make([]model.Game, 0, len(tc.genres))
			for i, g := range tc.genres {
				games = append(games, game(fmt.Sprintf("g%d", i), g, model.PlatformPC, false))
			}
			assert.Equal(t, tc.want, stats.ComputeSummary(games, nil).FavoriteGenre)
		})
	}
}

func TestComputeSummary_FavoritePlatform(t *testing.T) {
	games := []model.Game{
		game("a", model.GenreRPG, model.PlatformSwitch, false),
		game("b", model.GenreRPG, model.PlatformPS5, false),
		game("c", model.GenreRPG, model.PlatformPS5, false),
		game("d", model.GenreRPG, model.PlatformSwitch, false),
		game("e", model.GenreRPG, model.PlatformPS5, false),
	}
	assert.Equal(t, "PlayStation 5", stats.ComputeSummary(games, nil).FavoritePlatform)
}

func TestComputeSummary_UnreviewedGamesNeverRank(t *testing.T) {
	shiny := game("shiny", model.GenreRPG, model.PlatformPC, true)
	shiny.ReleaseYear = 2030
	games := []model.Game{
		shiny,
		game("low", model.GenreRPG, model.PlatformPC, false),
	}
	s := stats.ComputeSummary(games, []model.Review{review("low", 1, 0)})

	assert.Equal(t, []string{"low"}, rankedIDs(s))
}

func TestComputeSummary_TopRankedOrderAndLimit(t *testing.T) {
	var games []model.Game
	var reviews []model.Review
	// g0..g7 score 1,2,3,4,5,1,2,3.
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("g%d", i)
		games = append(games, game(id, model.GenreRPG, model.PlatformPC, false))
		reviews = append(reviews, review(id, i%5+1, 0))
	}
	games = append(games, game("none", model.GenreRPG, model.PlatformPC, false))

	s := stats.ComputeSummary(games, reviews)

	require.Len(t, s.TopRankedGames, stats.TopRankedLimit)
	assert.Equal(t, []string{"g4", "g3", "g2", "g7", "g1"}, rankedIDs(s))
	for i := 1; i < len(s.TopRankedGames); i++ {
		assert.GreaterOrEqual(t, s.TopRankedGames[i-1].MeanScore, s.TopRankedGames[i].MeanScore)
	}
}

func TestComputeSummary_TopRankedLengthBelowLimit(t *testing.T) {
	games := []model.Game{
		game("a", model.GenreRPG, model.PlatformPC, false),
		game("b", model.GenreRPG, model.PlatformPC, false),
		game("c", model.GenreRPG, model.PlatformPC, false),
	}
	s := stats.ComputeSummary(games, []model.Review{review("a", 2, 0), review("c", 5, 0), review("c", 4, 0)})

	assert.Equal(t, []string{"c", "a"}, rankedIDs(s))
	assert.InDelta(t, 4.5, s.TopRankedGames[0].MeanScore, 1e-9)
}

func TestComputeSummary_UnmatchedReviewsCountButDoNotRank(t *testing.T) {
	games := []model.Game{game("a", model.GenreRPG, model.PlatformPC, false)}
	reviews := []model.Review{review("ghost", 5, 2), review("a", 3, 1)}

	s := stats.ComputeSummary(games, reviews)

	assert.Equal(t, 2, s.TotalReviews)
	assert.Equal(t, 3.0, s.TotalHoursPlayed)
	assert.Equal(t, 4.0, s.AverageScore)
	assert.Equal(t, []string{"a"}, rankedIDs(s))
	assert.Equal(t, 3.0, s.TopRankedGames[0].MeanScore)
}

func TestComputeSummary_ReferenceFormIsIrrelevant(t *testing.T) {
	games := []model.Game{
		game("g1", model.GenreRPG, model.PlatformPC, true),
		game("g2", model.GenreAction, model.PlatformPS5, false),
		game("g3", model.GenreAction, model.PlatformPS5, false),
	}
	bare := []model.Review{
		review("g2", 5, 3),
		review("g1", 2, 1),
		review("g3", 4, 7),
		review("g2", 3, 2),
	}
	expanded := make([]model.Review, len(bare))
	for i, r := range bare {
		idx := slices.IndexFunc(games, func(g model.Game) bool { return g.ID == r.GameID() })
		r.Game = model.RefGame(games[idx])
		expanded[i] = r
	}

	assert.Equal(t, stats.ComputeSummary(games, bare), stats.ComputeSummary(games, expanded))
}

func TestComputeSummary_DoesNotAliasInputs(t *testing.T) {
	games := []model.Game{game("g1", model.GenreRPG, model.PlatformPC, false)}
	reviews := []model.Review{review("g1", 4, 1)}

	s := stats.ComputeSummary(games, reviews)
	games[0].Title = "mutated"
	games[0].ID = "other"
	reviews[0].Score = 1

	require.Len(t, s.TopRankedGames, 1)
	assert.Equal(t, "Game g1", s.TopRankedGames[0].Title)
	assert.Equal(t, "g1", s.TopRankedGames[0].ID)
	assert.Equal(t, 4.0, s.AverageScore)
}
