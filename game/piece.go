package game

import "fmt"

type LocationKind int

const (
	AtHome LocationKind = iota
	OnTrack
	InStretch
	Complete
)

var locationNames = [...]string{
	AtHome:    "home",
	OnTrack:   "track",
	InStretch: "stretch",
	Complete:  "complete",
}

func (k LocationKind) String() string {
	return locationNames[k]
}

// Location is where a piece currently is. Slot is only meaningful for
// OnTrack and InStretch.
type Location struct {
	Kind LocationKind
	Slot Slot
}

func HomeLocation() Location     { return Location{Kind: AtHome, Slot: NoSlot} }
func CompleteLocation() Location { return Location{Kind: Complete, Slot: NoSlot} }

// SlotLocation returns the location matching a board slot.
func SlotLocation(s Slot) Location {
	if s.IsStretch() {
		return Location{Kind: InStretch, Slot: s}
	}
	return Location{Kind: OnTrack, Slot: s}
}

// OnBoard reports whether the location occupies a board slot.
func (l Location) OnBoard() bool {
	return l.Kind == OnTrack || l.Kind == InStretch
}

func (l Location) String() string {
	if l.OnBoard() {
		return l.Slot.Code()
	}
	return l.Kind.String()
}

// PieceRef identifies a piece without granting access to it.
type PieceRef struct {
	Owner Color
	ID    int
}

func (r PieceRef) String() string {
	return fmt.Sprintf("%s#%d", r.Owner, r.ID)
}

// Piece is a single token. Its owner never changes.
type Piece struct {
	Owner    Color
	ID       int
	Location Location
}

func NewPiece(owner Color, id int) *Piece {
	return &Piece{Owner: owner, ID: id, Location: HomeLocation()}
}

func (p *Piece) Ref() PieceRef {
	return PieceRef{Owner: p.Owner, ID: p.ID}
}

// Progress returns the number of steps travelled from the start slot:
// -1 at home, 0..27 on the track, 28..32 in the home stretch and 33 once complete.
func (p *Piece) Progress() int {
	return ProgressOf(p.Owner, p.Location)
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s@%s", p.Ref(), p.Location)
}

// ProgressOf returns the progress a piece of the given owner has at a location.
func ProgressOf(owner Color, l Location) int {
	switch l.Kind {
	case OnTrack:
		return Distance(StartSlot(owner), l.Slot)
	case InStretch:
		return JunctionProgress + 1 + l.Slot.StretchIndex()
	case Complete:
		return FinalProgress
	default:
		return -1
	}
}

// locationAt maps a progress value back to a location for the given owner.
func locationAt(owner Color, progress int) (Location, bool) {
	switch {
	case progress < 0 || progress > FinalProgress:
		return Location{}, false
	case progress == FinalProgress:
		return CompleteLocation(), true
	case progress > JunctionProgress:
		s, err := StretchSlot(owner, progress-JunctionProgress-1)
		if err != nil {
			return Location{}, false
		}
		return SlotLocation(s), true
	default:
		return SlotLocation(Slot((int(StartSlot(owner)) + progress) % TrackSlots)), true
	}
}

// Destination returns where a piece lands after advancing roll steps, or
// false when the roll overshoots the final home-stretch slot.
func Destination(owner Color, from Location, roll int) (Location, bool) {
	if !from.OnBoard() || roll <= 0 {
		return Location{}, false
	}
	return locationAt(owner, ProgressOf(owner, from)+roll)
}
