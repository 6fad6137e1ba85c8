package service

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/maxviazov/game-tracker-service/internal/model"
)

const (
	maxTitleRunes  = 200
	minReleaseYear = 1980
	// releaseYearLead allows announced titles a few years ahead.
	releaseYearLead = 5
	minScore        = 1
	maxScore        = 5
)

// Library filter values accepted by ListGames.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

func parseStatus(status string) (model.GameFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", StatusAll:
		return model.GameFilter{}, true
	case StatusCompleted:
		return model.GameFilter{Completed: model.Ptr(true)}, true
	case StatusPending:
		return model.GameFilter{Completed: model.Ptr(false)}, true
	default:
		return model.GameFilter{}, false
	}
}

// validateGame checks a fully merged game; currentYear bounds the release year.
func validateGame(g model.Game, currentYear int) []FieldError {
	var ferrs []FieldError
	switch n := utf8.RuneCountInString(g.Title); {
	case n == 0:
		ferrs = append(ferrs, FieldError{Field: "title", Message: "is required"})
	case n > maxTitleRunes:
		ferrs = append(ferrs, FieldError{Field: "title", Message: fmt.Sprintf("must be at most %d characters", maxTitleRunes)})
	}
	if g.Genre == "" {
		ferrs = append(ferrs, FieldError{Field: "genre", Message: "is required"})
	} else if !g.Genre.Valid() {
		ferrs = append(ferrs, FieldError{Field: "genre", Message: "must be one of " + joinValues(model.Genres())})
	}
	if g.Platform == "" {
		ferrs = append(ferrs, FieldError{Field: "platform", Message: "is required"})
	} else if !g.Platform.Valid() {
		ferrs = append(ferrs, FieldError{Field: "platform", Message: "must be one of " + joinValues(model.Platforms())})
	}
	if maxYear := currentYear + releaseYearLead; g.ReleaseYear < minReleaseYear || g.ReleaseYear > maxYear {
		ferrs = append(ferrs, FieldError{Field: "release_year", Message: fmt.Sprintf("must be between %d and %d", minReleaseYear, maxYear)})
	}
	if g.CoverImageURL != "" && !isHTTPURL(g.CoverImageURL) {
		ferrs = append(ferrs, FieldError{Field: "cover_image_url", Message: "must be an http(s) URL"})
	}
	return ferrs
}

func validateReview(r model.Review) []FieldError {
	var ferrs []FieldError
	if r.GameID() == "" {
		ferrs = append(ferrs, FieldError{Field: "game_id", Message: "is required"})
	}
	if r.Score < minScore || r.Score > maxScore {
		ferrs = append(ferrs, FieldError{Field: "score", Message: fmt.Sprintf("must be between %d and %d", minScore, maxScore)})
	}
	if r.Text == "" {
		ferrs = append(ferrs, FieldError{Field: "text", Message: "is required"})
	}
	if r.HoursPlayed < 0 {
		ferrs = append(ferrs, FieldError{Field: "hours_played", Message: "must be >= 0"})
	}
	if !r.Difficulty.Valid() {
		ferrs = append(ferrs, FieldError{Field: "difficulty", Message: "must be one of " + joinValues(model.Difficulties())})
	}
	return ferrs
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func joinValues[T ~string](vals []T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, "|")
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
