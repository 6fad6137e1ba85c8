// Package model contains the domain entities and DTOs used across layers,
// the GameRef union that reviews carry, and the fixed enumerations with their validation.
package model

import "time"

// NotAvailable is reported for favorites when there is nothing to count.
const NotAvailable = "N/A"

// Defaults applied by the gateway when optional game fields are absent.
const (
	DefaultCoverImageURL = "https://via.placeholder.com/300x400?text=No+Image"
	DefaultDescription   = "No description"
)

// Game is one title in the personal collection.
type Game struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Genre         Genre     `json:"genre"`
	Platform      Platform  `json:"platform"`
	ReleaseYear   int       `json:"release_year"`
	Developer     string    `json:"developer"`
	CoverImageURL string    `json:"cover_image_url"`
	Description   string    `json:"description"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Review is a user evaluation of exactly one game.
// Game may hold a bare identifier or the expanded game, see GameRef.
type Review struct {
	ID             string     `json:"id"`
	Game           GameRef    `json:"game_id"`
	Score          int        `json:"score"`
	Text           string     `json:"text"`
	HoursPlayed    float64    `json:"hours_played"`
	Difficulty     Difficulty `json:"difficulty"`
	WouldRecommend bool       `json:"would_recommend"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// GameID is shorthand for r.Game.GameID().
func (r Review) GameID() string { return r.Game.GameID() }

// GameFilter narrows a library listing by completion state.
// A nil Completed means every game.
type GameFilter struct {
	Completed *bool
}

// DeleteGameResult reports what a cascading game delete removed.
type DeleteGameResult struct {
	Message        string `json:"message"`
	DeletedReviews int64  `json:"deleted_reviews"`
}

// RankedGame is a game annotated with the mean score of its reviews.
type RankedGame struct {
	Game
	MeanScore float64 `json:"mean_score"`
}

// StatisticsSummary holds figures derived from the whole collection.
// It is computed on demand and never persisted.
type StatisticsSummary struct {
	TotalGames       int          `json:"total_games"`
	CompletedGames   int          `json:"completed_games"`
	PendingGames     int          `json:"pending_games"`
	TotalReviews     int          `json:"total_reviews"`
	TotalHoursPlayed float64      `json:"total_hours_played"`
	AverageScore     float64      `json:"average_score"`
	FavoriteGenre    string       `json:"favorite_genre"`
	FavoritePlatform string       `json:"favorite_platform"`
	TopRankedGames   []RankedGame `json:"top_ranked_games"`
}
