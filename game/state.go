package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

type Phase int

const (
	AwaitingRoll Phase = iota
	RollResolved
	MoveApplied
	GameOver
)

var phaseNames = [...]string{
	AwaitingRoll: "awaiting roll",
	RollResolved: "roll resolved",
	MoveApplied:  "move applied",
	GameOver:     "game over",
}

func (p Phase) String() string {
	return phaseNames[p]
}

// GameState owns the board, the ordered players and the turn counter. All
// mutation happens through Roll, Apply and EndTurn, in that order, once per turn.
type GameState struct {
	Board   *Board
	Players []*Player
	Rules   Rules
	Current int   // index of the active player
	Turns   int   // turns resolved so far
	Phase   Phase // where the current turn is
	roll    int
	event   TurnEvent
	winner  int // index into Players, -1 if no winner yet
}

// NewGameState sets up a fresh game for the given identities in turn order.
func NewGameState(colors []Color, rules Rules) (*GameState, error) {
	players, err := NewPlayers(colors)
	if err != nil {
		return nil, err
	}
	return &GameState{
		Board:   NewBoard(),
		Players: players,
		Rules:   rules,
		Phase:   AwaitingRoll,
		winner:  -1,
	}, nil
}

// Active returns the player whose turn it is.
func (gs *GameState) Active() *Player {
	return gs.Players[gs.Current]
}

// Player returns the participant with the given identity, or nil.
func (gs *GameState) Player(c Color) *Player {
	for _, p := range gs.Players {
		if p.Color == c {
			return p
		}
	}
	return nil
}

// CurrentRoll returns the roll being resolved, or 0 outside a turn.
func (gs *GameState) CurrentRoll() int {
	return gs.roll
}

// Winner returns the winning identity once the game is over.
func (gs *GameState) Winner() (Color, bool) {
	if gs.winner < 0 {
		return 0, false
	}
	return gs.Players[gs.winner].Color, true
}

// Roll records the die result for the active player.
func (gs *GameState) Roll(roll int) error {
	if gs.Phase != AwaitingRoll {
		return gs.phaseError("roll")
	}
	if !ValidRoll(gs.Rules, roll) {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrRollOutOfRange, roll, gs.Rules.DieMin(), gs.Rules.DieMax())
	}
	gs.roll = roll
	gs.Phase = RollResolved
	return nil
}

// LegalMoves returns the active player's moves for the resolved roll.
func (gs *GameState) LegalMoves() []Move {
	if gs.Phase != RollResolved {
		return nil
	}
	return LegalMoves(gs.Active(), gs.Board, gs.roll, gs.Rules)
}

// Apply performs the chosen move, or forfeits the turn when move is nil.
// A move that is not currently legal is rejected without touching the state,
// and so is a forfeit while a legal move exists.
func (gs *GameState) Apply(move *Move) (TurnEvent, error) {
	if gs.Phase != RollResolved {
		return TurnEvent{}, gs.phaseError("apply")
	}

	legal := gs.LegalMoves()
	event := TurnEvent{
		Turn:   gs.Turns,
		Player: gs.Active().Color,
		Roll:   gs.roll,
	}

	if move == nil {
		if len(legal) > 0 {
			return TurnEvent{}, fmt.Errorf("%w: %s must move, %d legal moves available", ErrIllegalMove, event.Player, len(legal))
		}
	} else {
		chosen, ok := findMove(legal, *move)
		if !ok {
			return TurnEvent{}, fmt.Errorf("%w: %s", ErrIllegalMove, move)
		}
		if err := gs.play(chosen, &event); err != nil {
			return TurnEvent{}, err
		}
		event.Move = &chosen
		event.ExtraTurn = gs.Rules.CanRollAgain(gs.roll) && !gs.Active().Done()
	}

	event.Buckets = gs.Counts()
	if gs.Active().Done() {
		event.Winner, event.Won = gs.Active().Color, true
	}
	gs.event = event
	gs.Phase = MoveApplied
	return event, nil
}

// EndTurn checks the win condition and hands the turn to the next player,
// unless the last move earned another roll.
func (gs *GameState) EndTurn() error {
	if gs.Phase != MoveApplied {
		return gs.phaseError("end turn")
	}
	gs.Turns++
	gs.roll = 0

	if gs.Active().Done() {
		gs.winner = gs.Current
		gs.Phase = GameOver
		return nil
	}
	if !gs.event.ExtraTurn {
		gs.Current = (gs.Current + 1) % len(gs.Players)
	}
	gs.Phase = AwaitingRoll
	return nil
}

// Setup moves a home piece straight onto an empty slot, or to complete when
// slot is NoSlot. It is meant for building positions before play starts.
func (gs *GameState) Setup(ref PieceRef, s Slot) error {
	player := gs.Player(ref.Owner)
	if player == nil {
		return fmt.Errorf("%s is not playing", ref.Owner)
	}
	piece, err := player.Piece(ref.ID)
	if err != nil {
		return err
	}
	if piece.Location.Kind != AtHome {
		return fmt.Errorf("%w: %s is already in play", ErrIllegalMove, ref)
	}
	if s != NoSlot {
		occupant, err := gs.Board.Occupant(s)
		if err != nil {
			return err
		}
		if occupant != nil {
			return fmt.Errorf("%w: %s is occupied", ErrIllegalMove, s)
		}
	}

	if err := player.enter(piece); err != nil {
		return err
	}
	if s == NoSlot {
		piece.Location = CompleteLocation()
		return player.complete(piece)
	}
	_, err = gs.Board.Place(s, piece)
	return err
}

// LastEvent returns the event of the most recently applied turn.
func (gs *GameState) LastEvent() TurnEvent {
	return gs.event
}

func (gs *GameState) play(m Move, event *TurnEvent) error {
	player := gs.Active()
	piece, err := player.Piece(m.PieceID)
	if err != nil {
		return err
	}

	switch m.Kind {
	case EnterMove:
		if err := player.enter(piece); err != nil {
			return err
		}
	case AdvanceMove:
		if err := gs.Board.Vacate(piece.Location.Slot); err != nil {
			return err
		}
	}

	if m.Completes() {
		piece.Location = CompleteLocation()
		event.Completed = true
		return player.complete(piece)
	}

	result, err := gs.Board.Place(m.To.Slot, piece)
	if err != nil {
		return err
	}
	if result.IsCapture() {
		victim := result.Captured
		owner := gs.Player(victim.Owner)
		if owner == nil {
			return fmt.Errorf("%w: captured %s has no owner in this game", ErrInvariant, victim.Ref())
		}
		if err := owner.captured(victim); err != nil {
			return err
		}
		event.Captured = &Capture{Victim: victim.Ref(), Slot: result.Slot}
	}
	return nil
}

func findMove(legal []Move, m Move) (Move, bool) {
	for _, lm := range legal {
		if lm.Same(m) {
			return lm, true
		}
	}
	return Move{}, false
}

func (gs *GameState) phaseError(op string) error {
	if gs.Phase == GameOver {
		return fmt.Errorf("%w: cannot %s", ErrGameOver, op)
	}
	return fmt.Errorf("%w: cannot %s while %s", ErrPhase, op, gs.Phase)
}

// Counts returns the bucket sizes of every player in turn order.
func (gs *GameState) Counts() []BucketCounts {
	counts := make([]BucketCounts, len(gs.Players))
	for i, p := range gs.Players {
		counts[i] = p.Counts()
	}
	return counts
}

// CheckInvariants verifies piece conservation, bucket consistency and single
// occupancy of the board.
func (gs *GameState) CheckInvariants() error {
	total := 0
	onBoard := 0
	for _, p := range gs.Players {
		total += len(p.NotInGame) + len(p.InGame) + len(p.Complete)
		for _, piece := range p.NotInGame {
			if piece.Location.Kind != AtHome {
				return fmt.Errorf("%w: %s is not at home", ErrInvariant, piece)
			}
		}
		for _, piece := range p.InGame {
			if !piece.Location.OnBoard() {
				return fmt.Errorf("%w: %s is in game but off the board", ErrInvariant, piece)
			}
			occupant, err := gs.Board.Occupant(piece.Location.Slot)
			if err != nil {
				return err
			}
			if occupant != piece {
				return fmt.Errorf("%w: %s is not in its slot", ErrInvariant, piece)
			}
			onBoard++
		}
		for _, piece := range p.Complete {
			if piece.Location.Kind != Complete {
				return fmt.Errorf("%w: %s is not complete", ErrInvariant, piece)
			}
		}
	}
	if want := PiecesPerPlayer * len(gs.Players); total != want {
		return fmt.Errorf("%w: %d pieces in buckets, want %d", ErrInvariant, total, want)
	}
	if n := gs.Board.Count(); n != onBoard {
		return fmt.Errorf("%w: %d pieces on the board, %d in game", ErrInvariant, n, onBoard)
	}
	return nil
}

// Clone returns a deep copy that shares only the rules.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Board:   NewBoard(),
		Players: make([]*Player, len(gs.Players)),
		Rules:   gs.Rules, // Rules are immutable
		Current: gs.Current,
		Turns:   gs.Turns,
		Phase:   gs.Phase,
		roll:    gs.roll,
		event:   gs.event,
		winner:  gs.winner,
	}
	for i, p := range gs.Players {
		cp := &Player{Color: p.Color}
		for id, piece := range p.Pieces {
			cp.Pieces[id] = &Piece{Owner: piece.Owner, ID: piece.ID, Location: piece.Location}
			if piece.Location.OnBoard() {
				c.Board.slots[piece.Location.Slot] = cp.Pieces[id]
			}
		}
		cp.NotInGame = cloneBucket(p.NotInGame, cp)
		cp.InGame = cloneBucket(p.InGame, cp)
		cp.Complete = cloneBucket(p.Complete, cp)
		c.Players[i] = cp
	}
	return c
}

func cloneBucket(bucket []*Piece, owner *Player) []*Piece {
	out := make([]*Piece, len(bucket))
	for i, piece := range bucket {
		out[i] = owner.Pieces[piece.ID]
	}
	return out
}

// Hash fingerprints the turn position and every piece location.
func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(gs.Current))
	binary.Write(hasher, binary.LittleEndian, int64(gs.Phase))
	binary.Write(hasher, binary.LittleEndian, int64(gs.roll))

	for _, p := range gs.Players {
		binary.Write(hasher, binary.LittleEndian, int64(p.Color))
		for _, piece := range p.Pieces {
			binary.Write(hasher, binary.LittleEndian, int64(piece.Location.Kind))
			binary.Write(hasher, binary.LittleEndian, int64(piece.Location.Slot))
		}
	}

	return StateHash(hasher.Sum64())
}
