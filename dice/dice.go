// Package dice provides the randomness collaborators consumed by the game:
// uniform die rolls and selection without replacement.
package dice

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var ErrChoice = errors.New("cannot choose without replacement")

// Roller is the randomness capability the simulation depends on.
type Roller interface {
	// Roll returns a uniformly distributed integer in [min, max].
	Roll(min, max int) int
	// ChooseWithoutReplacement returns n distinct indices in [0, size).
	ChooseWithoutReplacement(n, size int) ([]int, error)
}

// Source is a seeded Roller backed by a PCG generator. A Source must not be
// shared between goroutines; give each worker its own.
type Source struct {
	rng *rand.Rand
}

func NewSource(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

func (s *Source) Roll(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("invalid roll range [%d, %d]", min, max))
	}
	return min + s.rng.Intn(max-min+1)
}

func (s *Source) ChooseWithoutReplacement(n, size int) ([]int, error) {
	if n < 0 || n > size {
		return nil, fmt.Errorf("%w: %d from %d", ErrChoice, n, size)
	}
	return s.rng.Perm(size)[:n], nil
}

// Choose picks n distinct elements of from using the roller.
func Choose[T any](r Roller, n int, from []T) ([]T, error) {
	indices, err := r.ChooseWithoutReplacement(n, len(from))
	if err != nil {
		return nil, err
	}
	chosen := make([]T, len(indices))
	for i, idx := range indices {
		chosen[i] = from[idx]
	}
	return chosen, nil
}
