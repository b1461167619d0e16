package game

import (
	"fmt"

	"troubler/utils"
)

// BucketCounts summarises where a player's pieces are.
type BucketCounts struct {
	Player    Color
	NotInGame int
	InGame    int
	Complete  int
}

// Player owns three pieces partitioned across three disjoint buckets.
type Player struct {
	Color     Color
	Pieces    [PiecesPerPlayer]*Piece // indexed by piece ID
	NotInGame []*Piece
	InGame    []*Piece
	Complete  []*Piece
}

func NewPlayer(c Color) *Player {
	p := &Player{Color: c}
	for i := range p.Pieces {
		p.Pieces[i] = NewPiece(c, i)
		p.NotInGame = append(p.NotInGame, p.Pieces[i])
	}
	return p
}

// NewPlayers creates one player per identity, rejecting duplicates.
func NewPlayers(colors []Color) ([]*Player, error) {
	if len(colors) < MinPlayers || len(colors) > MaxPlayers {
		return nil, fmt.Errorf("%w: %d", ErrPlayerCount, len(colors))
	}
	seen := make(map[Color]bool, len(colors))
	players := make([]*Player, 0, len(colors))
	for _, c := range colors {
		if !c.Valid() {
			return nil, fmt.Errorf("unknown player %v", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, c)
		}
		seen[c] = true
		players = append(players, NewPlayer(c))
	}
	return players, nil
}

// Piece returns the piece with the given ID.
func (p *Player) Piece(id int) (*Piece, error) {
	if id < 0 || id >= PiecesPerPlayer {
		return nil, fmt.Errorf("%s has no piece %d", p.Color, id)
	}
	return p.Pieces[id], nil
}

func (p *Player) HasPiecesInPlay() bool {
	return len(p.InGame) > 0
}

func (p *Player) HasPieceAtHome() bool {
	return len(p.NotInGame) > 0
}

// NextAtHome returns the lowest-numbered piece waiting to enter, or nil.
func (p *Player) NextAtHome() *Piece {
	for _, piece := range p.Pieces {
		if piece.Location.Kind == AtHome {
			return piece
		}
	}
	return nil
}

// Done reports whether every piece has completed.
func (p *Player) Done() bool {
	return len(p.Complete) == PiecesPerPlayer
}

func (p *Player) Counts() BucketCounts {
	return BucketCounts{
		Player:    p.Color,
		NotInGame: len(p.NotInGame),
		InGame:    len(p.InGame),
		Complete:  len(p.Complete),
	}
}

// Progress sums the progress of all pieces, counting home pieces as zero.
func (p *Player) Progress() int {
	total := 0
	for _, piece := range p.Pieces {
		total += max(piece.Progress(), 0)
	}
	return total
}

func (p *Player) enter(piece *Piece) error {
	return p.transfer(piece, &p.NotInGame, &p.InGame)
}

func (p *Player) complete(piece *Piece) error {
	return p.transfer(piece, &p.InGame, &p.Complete)
}

func (p *Player) captured(piece *Piece) error {
	return p.transfer(piece, &p.InGame, &p.NotInGame)
}

func (p *Player) transfer(piece *Piece, from, to *[]*Piece) error {
	if piece.Owner != p.Color {
		return fmt.Errorf("%w: %s does not belong to %s", ErrInvariant, piece.Ref(), p.Color)
	}
	var ok bool
	*from, ok = utils.Remove(*from, piece)
	if !ok {
		return fmt.Errorf("%w: %s is not in the expected bucket", ErrInvariant, piece.Ref())
	}
	*to = append(*to, piece)
	return nil
}
