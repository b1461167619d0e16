package game

import "fmt"

// CaptureResult reports the piece evicted by a placement, if any.
type CaptureResult struct {
	Captured *Piece
	Slot     Slot
}

func (r CaptureResult) IsCapture() bool {
	return r.Captured != nil
}

// Board holds at most one piece per slot.
type Board struct {
	slots [NumSlots]*Piece
}

func NewBoard() *Board {
	return &Board{}
}

// Occupant returns the piece in a slot, or nil when the slot is empty.
func (b *Board) Occupant(s Slot) (*Piece, error) {
	if !s.Valid() {
		return nil, &BoardIndexError{Index: int(s)}
	}
	return b.slots[s], nil
}

// Place writes a piece into a slot and updates the piece's location.
// An opposing piece on a track slot is captured and sent home. Sharing a slot
// with a piece of the same owner, entering another player's home stretch, or
// landing on an occupied home-stretch slot is illegal.
func (b *Board) Place(s Slot, p *Piece) (CaptureResult, error) {
	if !s.Valid() {
		return CaptureResult{}, &BoardIndexError{Index: int(s)}
	}
	if s.IsStretch() && s.StretchOwner() != p.Owner {
		return CaptureResult{}, fmt.Errorf("%w: %s cannot enter %s's home stretch", ErrIllegalMove, p.Ref(), s.StretchOwner())
	}

	result := CaptureResult{Slot: s}
	occupant := b.slots[s]
	if occupant != nil && occupant != p {
		switch {
		case occupant.Owner == p.Owner:
			return CaptureResult{}, fmt.Errorf("%w: %s is already occupied by %s", ErrIllegalMove, s, occupant.Ref())
		case s.IsStretch():
			return CaptureResult{}, fmt.Errorf("%w: home stretch slot %s is blocked", ErrIllegalMove, s)
		}
		occupant.Location = HomeLocation()
		result.Captured = occupant
	}

	b.slots[s] = p
	p.Location = SlotLocation(s)
	return result, nil
}

// Vacate clears a slot. The caller is responsible for relocating the piece.
func (b *Board) Vacate(s Slot) error {
	if !s.Valid() {
		return &BoardIndexError{Index: int(s)}
	}
	b.slots[s] = nil
	return nil
}

// Pieces returns every piece on the board in slot order.
func (b *Board) Pieces() []*Piece {
	var pieces []*Piece
	for _, p := range b.slots {
		if p != nil {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

// Count returns the number of occupied slots.
func (b *Board) Count() int {
	n := 0
	for _, p := range b.slots {
		if p != nil {
			n++
		}
	}
	return n
}
