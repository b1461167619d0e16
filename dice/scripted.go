package dice

import "fmt"

// Scripted replays a fixed sequence of rolls, for deterministic scenarios.
// Choices always return the first n indices in order.
type Scripted struct {
	Rolls []int
	next  int
}

func NewScripted(rolls ...int) *Scripted {
	return &Scripted{Rolls: rolls}
}

func (s *Scripted) Roll(min, max int) int {
	if s.next >= len(s.Rolls) {
		panic(fmt.Sprintf("scripted roller exhausted after %d rolls", len(s.Rolls)))
	}
	roll := s.Rolls[s.next]
	s.next++
	return roll
}

func (s *Scripted) ChooseWithoutReplacement(n, size int) ([]int, error) {
	if n < 0 || n > size {
		return nil, fmt.Errorf("%w: %d from %d", ErrChoice, n, size)
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices, nil
}

// Remaining returns how many scripted rolls are left.
func (s *Scripted) Remaining() int {
	return len(s.Rolls) - s.next
}
