package agent

import (
	"troubler/game"
)

// Scoring weights. A capture the profile is willing to make outweighs any
// movement preference; completing a piece outweighs most avoidance penalties.
const (
	CaptureWeight   = 100.0
	CompleteWeight  = 20.0
	AvoidanceWeight = 5.0
)

// Policy chooses moves according to a fixed Profile.
type Policy struct {
	Profile Profile
	Rules   game.Rules
}

func NewPolicy(profile Profile, rules game.Rules) *Policy {
	return &Policy{Profile: profile, Rules: rules}
}

func (p *Policy) ChooseMove(gs *game.GameState) *game.Move {
	return p.Choose(gs.Active(), gs.Board, gs.CurrentRoll())
}

// Choose returns the preferred legal move for the player and roll, or nil when
// the player has no legal move. Ties go to the earliest candidate: entering,
// then pieces by ID.
func (p *Policy) Choose(player *game.Player, board *game.Board, roll int) *game.Move {
	moves := game.LegalMoves(player, board, roll, p.Rules)
	if len(moves) == 0 {
		return nil
	}

	var enter *game.Move
	var candidates []game.Move
	for i := range moves {
		if moves[i].Kind == game.EnterMove {
			enter = &moves[i]
		} else {
			candidates = append(candidates, moves[i])
		}
	}

	if enter != nil {
		switch {
		case p.Profile.Piece == GetOnBoard, len(candidates) == 0:
			return enter
		case enter.IsCapture() && p.wantsCapture(*enter, board):
			candidates = append([]game.Move{*enter}, candidates...)
		}
	}

	best := candidates[0]
	bestScore := p.Score(best, board)
	for _, m := range candidates[1:] {
		if score := p.Score(m, board); score > bestScore {
			best, bestScore = m, score
		}
	}
	return &best
}

// Score rates a legal move by capture, movement, completion and avoidance terms.
func (p *Policy) Score(m game.Move, board *game.Board) float64 {
	score := 0.0

	if m.IsCapture() && p.wantsCapture(m, board) {
		score += CaptureWeight
	}

	progress := max(game.ProgressOf(m.Player, m.From), 0)
	switch p.Profile.Movement {
	case Leader:
		score += float64(progress)
	case Follower:
		score += float64(game.FinalProgress - progress)
	}

	if m.Completes() {
		score += CompleteWeight
	}

	if m.To.Kind == game.OnTrack {
		threats := game.Threats(board, m.Player, m.To.Slot, p.Rules.DieMax())
		score -= float64(threats*p.Profile.Avoidance) * AvoidanceWeight
	}
	return score
}

// CaptureThreshold is the aggression a profile needs to prefer capturing a
// piece with the given progress. Pieces further along are cheaper to justify.
func CaptureThreshold(victimProgress int) int {
	return MaxThreshold - max(victimProgress, 0)*MaxThreshold/game.FinalProgress
}

func (p *Policy) wantsCapture(m game.Move, board *game.Board) bool {
	victim, err := board.Occupant(m.To.Slot)
	if err != nil || victim == nil {
		return false
	}
	return p.Profile.Aggression > CaptureThreshold(victim.Progress())
}
