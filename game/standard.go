package game

import "slices"

type StandardRules struct {
	MinRoll    int
	MaxRoll    int
	EntryRolls []int
	AgainRolls []int
}

// NewStandardRules uses a six-sided die where a 6 both enters a piece and
// grants another roll.
func NewStandardRules() *StandardRules {
	return &StandardRules{
		MinRoll:    1,
		MaxRoll:    6,
		EntryRolls: []int{6},
		AgainRolls: []int{6},
	}
}

// NewLenientRules also lets a 1 enter a piece.
func NewLenientRules() *StandardRules {
	r := NewStandardRules()
	r.EntryRolls = []int{1, 6}
	return r
}

func (sr *StandardRules) DieMin() int {
	return sr.MinRoll
}

func (sr *StandardRules) DieMax() int {
	return sr.MaxRoll
}

func (sr *StandardRules) CanEnter(roll int) bool {
	return slices.Contains(sr.EntryRolls, roll)
}

func (sr *StandardRules) CanRollAgain(roll int) bool {
	return slices.Contains(sr.AgainRolls, roll)
}
