package game

import "fmt"

// Slot is a validated flat index into the board. Indices 0..27 address the
// shared track, 28..51 address the four home stretches.
type Slot int

const NumSlots = TrackSlots + MaxPlayers*StretchSlots

// NoSlot marks a location that is not on the board.
const NoSlot Slot = -1

var (
	slotCodes [NumSlots]string
	slotIndex = make(map[string]Slot, NumSlots)
)

func init() {
	for t := 0; t < TrackSlots; t++ {
		side, pos := t/SlotsPerSide, t%SlotsPerSide
		owner := colorNames[side][:1]
		var code string
		if pos == SlotsPerSide-1 {
			next := colorNames[(side+1)%MaxPlayers][:1]
			code = owner + next
		} else {
			code = fmt.Sprintf("%s%d", owner, pos+1)
		}
		slotCodes[t] = code
	}
	for c := range colorNames {
		for i := 0; i < StretchSlots; i++ {
			s := TrackSlots + c*StretchSlots + i
			slotCodes[s] = fmt.Sprintf("%c%d", colorNames[c][0]-'a'+'A', i+1)
		}
	}
	for i, code := range slotCodes {
		slotIndex[code] = Slot(i)
	}
}

// TrackSlot returns the slot for track position i.
func TrackSlot(i int) (Slot, error) {
	if i < 0 || i >= TrackSlots {
		return NoSlot, &BoardIndexError{Index: i}
	}
	return Slot(i), nil
}

// StretchSlot returns slot i (0-based) of the given player's home stretch.
func StretchSlot(c Color, i int) (Slot, error) {
	if !c.Valid() || i < 0 || i >= StretchSlots {
		return NoSlot, &BoardIndexError{Index: TrackSlots + int(c)*StretchSlots + i}
	}
	return Slot(TrackSlots + int(c)*StretchSlots + i), nil
}

// ParseSlot looks up a slot by its two-character code, e.g. "r5", "gy" or "B3".
func ParseSlot(code string) (Slot, error) {
	s, ok := slotIndex[code]
	if !ok {
		return NoSlot, &BoardIndexError{Index: -1, Code: code}
	}
	return s, nil
}

func (s Slot) Valid() bool     { return s >= 0 && s < NumSlots }
func (s Slot) IsTrack() bool   { return s >= 0 && s < TrackSlots }
func (s Slot) IsStretch() bool { return s >= TrackSlots && s < NumSlots }

// StretchOwner returns the owner of a home-stretch slot.
func (s Slot) StretchOwner() Color {
	return Color((int(s) - TrackSlots) / StretchSlots)
}

// StretchIndex returns the 0-based position inside a home stretch.
func (s Slot) StretchIndex() int {
	return (int(s) - TrackSlots) % StretchSlots
}

func (s Slot) Code() string {
	if !s.Valid() {
		return "--"
	}
	return slotCodes[s]
}

func (s Slot) String() string {
	return s.Code()
}

// StartSlot is where a player's pieces enter the track.
func StartSlot(c Color) Slot {
	return Slot(int(c) * SlotsPerSide)
}

// JunctionSlot is the last track slot a player's pieces pass before turning
// into their home stretch.
func JunctionSlot(c Color) Slot {
	return Slot((int(c)*SlotsPerSide + JunctionProgress) % TrackSlots)
}

// Distance counts the forward steps along the track from one track slot to another.
func Distance(from, to Slot) int {
	return (int(to) - int(from) + TrackSlots) % TrackSlots
}
