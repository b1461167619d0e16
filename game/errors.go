package game

import (
	"errors"
	"fmt"
)

var (
	ErrBoardIndex      = errors.New("board index out of range")
	ErrIllegalMove     = errors.New("illegal move")
	ErrRollOutOfRange  = errors.New("roll out of range")
	ErrPhase           = errors.New("operation not allowed in current phase")
	ErrGameOver        = errors.New("game is over")
	ErrDuplicatePlayer = errors.New("duplicate player")
	ErrPlayerCount     = errors.New("invalid number of players")
	ErrInvariant       = errors.New("state invariant violated")
)

// BoardIndexError reports an addressed slot that does not exist.
type BoardIndexError struct {
	Index int
	Code  string
}

func (e *BoardIndexError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%v: unknown slot code %q", ErrBoardIndex, e.Code)
	}
	return fmt.Sprintf("%v: %d", ErrBoardIndex, e.Index)
}

func (e *BoardIndexError) Unwrap() error {
	return ErrBoardIndex
}
