package model

// Genre is one of the fixed catalog genres.
type Genre string

const (
	GenreAdventure  Genre = "Adventure"
	GenreAction     Genre = "Action"
	GenreRPG        Genre = "RPG"
	GenreStrategy   Genre = "Strategy"
	GenreSports     Genre = "Sports"
	GenreSandbox    Genre = "Sandbox"
	GenreSimulation Genre = "Simulation"
	GenreHorror     Genre = "Horror"
	GenrePuzzle     Genre = "Puzzle"
	GenreFPS        Genre = "FPS"
)

// Platform is one of the fixed catalog platforms.
type Platform string

const (
	PlatformPC            Platform = "PC"
	PlatformPS5           Platform = "PlayStation 5"
	PlatformPS4           Platform = "PlayStation 4"
	PlatformXboxSeries    Platform = "Xbox Series X/S"
	PlatformXboxOne       Platform = "Xbox One"
	PlatformSwitch        Platform = "Nintendo Switch"
	PlatformMultiPlatform Platform = "Multi-platform"
)

// Difficulty is the perceived difficulty recorded with a review.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyNormal Difficulty = "Normal"
	DifficultyHard   Difficulty = "Hard"
)

var (
	genres       = []Genre{GenreAdventure, GenreAction, GenreRPG, GenreStrategy, GenreSports, GenreSandbox, GenreSimulation, GenreHorror, GenrePuzzle, GenreFPS}
	platforms    = []Platform{PlatformPC, PlatformPS5, PlatformPS4, PlatformXboxSeries, PlatformXboxOne, PlatformSwitch, PlatformMultiPlatform}
	difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
)

// Genres returns the allowed genres in display order.
func Genres() []Genre { return append([]Genre(nil), genres...) }

// Platforms returns the allowed platforms in display order.
func Platforms() []Platform { return append([]Platform(nil), platforms...) }

// Difficulties returns the allowed difficulties in display order.
func Difficulties() []Difficulty { return append([]Difficulty(nil), difficulties...) }

func (g Genre) Valid() bool {
	for _, v := range genres {
		if v == g {
			return true
		}
	}
	return false
}

func (p Platform) Valid() bool {
	for _, v := range platforms {
		if v == p {
			return true
		}
	}
	return false
}

func (d Difficulty) Valid() bool {
	for _, v := range difficulties {
		if v == d {
			return true
		}
	}
	return false
}
