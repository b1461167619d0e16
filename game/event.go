package game

// Capture records a piece sent home by a move.
type Capture struct {
	Victim PieceRef
	Slot   Slot
}

// TurnEvent is a read-only snapshot of one resolved turn.
type TurnEvent struct {
	Turn      int
	Player    Color
	Roll      int
	Move      *Move // nil when the turn was forfeited
	Captured  *Capture
	Completed bool
	ExtraTurn bool
	Buckets   []BucketCounts
	Winner    Color
	Won       bool
}

func (e TurnEvent) Forfeit() bool {
	return e.Move == nil
}
