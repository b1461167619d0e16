// Package agent holds the controllers that decide which legal move a player makes.
package agent

import "troubler/game"

// Agent picks a move for the active player of a state whose roll is resolved.
// A nil move forfeits the turn and is only returned when no legal move exists.
type Agent interface {
	ChooseMove(gs *game.GameState) *game.Move
}
