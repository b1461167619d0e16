package agent

import (
	"troubler/dice"
	"troubler/game"
)

// RandomAgent picks uniformly among the legal moves.
type RandomAgent struct {
	Roller dice.Roller
}

func NewRandomAgent(r dice.Roller) *RandomAgent {
	return &RandomAgent{Roller: r}
}

func (a *RandomAgent) ChooseMove(gs *game.GameState) *game.Move {
	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return nil
	}
	move := moves[a.Roller.Roll(0, len(moves)-1)]
	return &move
}
