package game

type Rules interface {
	DieMin() int
	DieMax() int
	// CanEnter reports whether a roll lets a home piece onto the track.
	CanEnter(roll int) bool
	// CanRollAgain reports whether a roll grants the mover another turn.
	CanRollAgain(roll int) bool
}

// ValidRoll reports whether a roll lies inside the rules' die range.
func ValidRoll(r Rules, roll int) bool {
	return roll >= r.DieMin() && roll <= r.DieMax()
}
