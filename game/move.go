package game

import "fmt"

type MoveKind int

const (
	EnterMove MoveKind = iota
	AdvanceMove
)

// Move is a legal action for one roll: either entering a home piece or
// advancing a piece already in play.
type Move struct {
	Kind    MoveKind
	Player  Color
	PieceID int
	Roll    int
	From    Location
	To      Location
	Victim  *PieceRef // opposing piece captured by this move
}

func (m Move) Piece() PieceRef {
	return PieceRef{Owner: m.Player, ID: m.PieceID}
}

func (m Move) IsCapture() bool {
	return m.Victim != nil
}

func (m Move) Completes() bool {
	return m.To.Kind == Complete
}

// Same reports whether two moves describe the same action.
func (m Move) Same(o Move) bool {
	return m.Kind == o.Kind && m.Player == o.Player && m.PieceID == o.PieceID && m.Roll == o.Roll
}

func (m Move) String() string {
	verb := "advance"
	if m.Kind == EnterMove {
		verb = "enter"
	}
	s := fmt.Sprintf("%s %s %s->%s", verb, m.Piece(), m.From, m.To)
	if m.Victim != nil {
		s += fmt.Sprintf(" x%s", m.Victim)
	}
	return s
}

// LegalMoves lists every legal move for a player and roll: entering first,
// then advances by piece ID.
func LegalMoves(p *Player, b *Board, roll int, r Rules) []Move {
	var moves []Move

	if r.CanEnter(roll) {
		if piece := p.NextAtHome(); piece != nil {
			start := StartSlot(p.Color)
			if m, ok := candidate(EnterMove, piece, b, roll, SlotLocation(start)); ok {
				moves = append(moves, m)
			}
		}
	}

	for _, piece := range p.Pieces {
		if !piece.Location.OnBoard() {
			continue
		}
		to, ok := Destination(piece.Owner, piece.Location, roll)
		if !ok {
			continue
		}
		if m, ok := candidate(AdvanceMove, piece, b, roll, to); ok {
			moves = append(moves, m)
		}
	}
	return moves
}

func candidate(kind MoveKind, piece *Piece, b *Board, roll int, to Location) (Move, bool) {
	m := Move{
		Kind:    kind,
		Player:  piece.Owner,
		PieceID: piece.ID,
		Roll:    roll,
		From:    piece.Location,
		To:      to,
	}
	if !to.OnBoard() {
		return m, true
	}
	occupant := b.slots[to.Slot]
	switch {
	case occupant == nil:
		return m, true
	case occupant.Owner == piece.Owner, to.Kind == InStretch:
		return m, false
	}
	victim := occupant.Ref()
	m.Victim = &victim
	return m, true
}
