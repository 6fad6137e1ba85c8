// Package stats derives collection statistics from games and reviews.
//
// Everything here is a pure transform over snapshots: no I/O, no shared state,
// safe to call from any goroutine. Callers load both collections first and only
// then hand them over.
package stats

import (
	"math"
	"slices"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

// TopRankedLimit caps the length of StatisticsSummary.TopRankedGames.
const TopRankedLimit = 5

// ComputeSummary builds a StatisticsSummary from full snapshots of games and reviews.
// It never fails: empty inputs degrade to zero values and the NotAvailable sentinel.
// Reviews pointing at unknown games are counted in totals but rank nothing.
func ComputeSummary(games []model.Game, reviews []model.Review) model.StatisticsSummary {
	s := model.StatisticsSummary{
		TotalGames:       len(games),
		TotalReviews:     len(reviews),
		FavoriteGenre:    model.NotAvailable,
		FavoritePlatform: model.NotAvailable,
		TopRankedGames:   []model.RankedGame{},
	}

	for _, g := range games {
		if g.Completed {
			s.CompletedGames++
		}
	}
	s.PendingGames = s.TotalGames - s.CompletedGames

	// Scores are grouped by normalized game id once, up front.
	scores := make(map[string][]int, len(games))
	scoreSum := 0
	for _, r := range reviews {
		s.TotalHoursPlayed += r.HoursPlayed
		scoreSum += r.Score
		id := r.GameID()
		scores[id] = append(scores[id], r.Score)
	}
	if s.TotalReviews > 0 {
		s.AverageScore = roundOneDecimal(float64(scoreSum) / float64(s.TotalReviews))
	}

	if len(games) > 0 {
		s.FavoriteGenre = mode(games, func(g model.Game) string { return string(g.Genre) })
		s.FavoritePlatform = mode(games, func(g model.Game) string { return string(g.Platform) })
	}

	s.TopRankedGames = topRanked(games, scores, TopRankedLimit)
	return s
}

// mode returns the most frequent key. On a tie the key seen first wins.
// The caller guarantees items is non-empty.
func mode[T any](items []T, key func(T) string) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, it := range items {
		k := key(it)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	best := order[0]
	for _, k := range order[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

func topRanked(games []model.Game, scores map[string][]int, limit int) []model.RankedGame {
	ranked := make([]model.RankedGame, 0, len(games))
	for _, g := range games {
		ss := scores[g.ID]
		if len(ss) == 0 {
			continue
		}
		sum := 0
		for _, v := range ss {
			sum += v
		}
		ranked = append(ranked, model.RankedGame{
			Game:      g,
			MeanScore: float64(sum) / float64(len(ss)),
		})
	}

	// Stable: equal means keep the order games were given in.
	slices.SortStableFunc(ranked, func(a, b model.RankedGame) int {
		switch {
		case a.MeanScore > b.MeanScore:
			return -1
		case a.MeanScore < b.MeanScore:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > limit {
		ranked = ranked[:limit:limit]
	}
	return ranked
}

// roundOneDecimal rounds half-up to one decimal place.
func roundOneDecimal(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
