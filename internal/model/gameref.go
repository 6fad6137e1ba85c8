package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// GameRef points a review at its game. The gateway sends either the bare
// identifier or, when expanded, the whole game object. Exactly one form is held.
type GameRef struct {
	id   string
	game *Game
}

// RefID builds a reference from a bare identifier.
func RefID(id string) GameRef { return GameRef{id: id} }

// RefGame builds an expanded reference. The game is copied.
func RefGame(g Game) GameRef { return GameRef{game: &g} }

// GameID returns the referenced identifier regardless of the form held.
func (r GameRef) GameID() string {
	if r.game != nil {
		return r.game.ID
	}
	return r.id
}

// Expanded returns the embedded game, if the reference carries one.
func (r GameRef) Expanded() (Game, bool) {
	if r.game == nil {
		return Game{}, false
	}
	return *r.game, true
}

// IsZero reports whether the reference points nowhere.
func (r GameRef) IsZero() bool { return r.GameID() == "" }

func (r GameRef) MarshalJSON() ([]byte, error) {
	if r.game != nil {
		return json.Marshal(r.game)
	}
	return json.Marshal(r.id)
}

func (r *GameRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = GameRef{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = RefID(id)
		return nil
	case data[0] == '{':
		var g Game
		if err := json.Unmarshal(data, &g); err != nil {
			return err
		}
		*r = RefGame(g)
		return nil
	default:
		return errors.New("game reference must be a string id or a game object")
	}
}
