package model

// GameInput carries client-supplied game fields. A nil pointer means
// "not provided": defaults apply on create, the stored value is kept on update.
type GameInput struct {
	Title         *string `json:"title,omitempty"`
	Genre         *string `json:"genre,omitempty"`
	Platform      *string `json:"platform,omitempty"`
	ReleaseYear   *int    `json:"release_year,omitempty"`
	Developer     *string `json:"developer,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	Description   *string `json:"description,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
}

// ReviewInput carries client-supplied review fields with the same nil semantics.
type ReviewInput struct {
	GameID         *string  `json:"game_id,omitempty"`
	Score          *int     `json:"score,omitempty"`
	Text           *string  `json:"text,omitempty"`
	HoursPlayed    *float64 `json:"hours_played,omitempty"`
	Difficulty     *string  `json:"difficulty,omitempty"`
	WouldRecommend *bool    `json:"would_recommend,omitempty"`
}

// Ptr returns a pointer to v; handy for building inputs.
func Ptr[T any](v T) *T { return &v }
