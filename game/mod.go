package game

const (
	PiecesPerPlayer = 3
	MaxPlayers      = 4
	MinPlayers      = 2

	TrackSlots   = 28 // shared circular track
	StretchSlots = 6  // private home stretch per player
	SlotsPerSide = 7  // six colored slots plus one junction

	// Progress is counted in steps from the owner's start slot.
	JunctionProgress = TrackSlots - 1
	FinalProgress    = JunctionProgress + StretchSlots
)

type StateHash uint64

// Evaluate scores a state between -1 and 1 from the given player's perspective.
type Evaluate func(gs *GameState, player Color) float64
