package engine

import (
	"errors"

	"troubler/game"
)

var (
	ErrStalemate    = errors.New("stalemate")
	ErrMissingAgent = errors.New("no agent for player")
)

// Result summarises a finished game.
type Result struct {
	Winner      game.Color
	Draw        bool
	Turns       int
	Captures    int
	Forfeits    int
	Completions int
}

// Observer receives every resolved turn.
type Observer func(game.TurnEvent)
