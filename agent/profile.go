package agent

import (
	"fmt"
	"strconv"
	"strings"

	"troubler/dice"
)

// PiecePreference decides between bringing a new piece into play and
// advancing one already in play.
type PiecePreference int

const (
	GetOnBoard PiecePreference = iota
	FinishPiece
)

// Movement decides which of several pieces to advance.
type Movement int

const (
	Leader   Movement = iota // advance the piece furthest along
	Follower                 // advance the piece furthest behind
)

// MaxThreshold bounds the aggression and avoidance axes.
const MaxThreshold = 10

var piecePreferenceNames = [...]string{GetOnBoard: "getonboard", FinishPiece: "finishpiece"}
var movementNames = [...]string{Leader: "leader", Follower: "follower"}

func (p PiecePreference) String() string { return piecePreferenceNames[p] }
func (m Movement) String() string        { return movementNames[m] }

// Profile is the fixed strategy of one controller.
type Profile struct {
	Piece      PiecePreference
	Aggression int // 0..10, willingness to capture
	Movement   Movement
	Avoidance  int // 0..10, reluctance to stop within reach of opponents
}

func DefaultProfile() Profile {
	return Profile{Piece: GetOnBoard, Aggression: 5, Movement: Leader, Avoidance: 5}
}

// RandomProfile draws every axis uniformly from the roller.
func RandomProfile(r dice.Roller) Profile {
	return Profile{
		Piece:      PiecePreference(r.Roll(0, 1)),
		Aggression: r.Roll(0, MaxThreshold),
		Movement:   Movement(r.Roll(0, 1)),
		Avoidance:  r.Roll(0, MaxThreshold),
	}
}

func (p Profile) Validate() error {
	if p.Piece != GetOnBoard && p.Piece != FinishPiece {
		return fmt.Errorf("invalid piece preference %d", p.Piece)
	}
	if p.Movement != Leader && p.Movement != Follower {
		return fmt.Errorf("invalid movement %d", p.Movement)
	}
	if p.Aggression < 0 || p.Aggression > MaxThreshold {
		return fmt.Errorf("aggression %d not in [0, %d]", p.Aggression, MaxThreshold)
	}
	if p.Avoidance < 0 || p.Avoidance > MaxThreshold {
		return fmt.Errorf("avoidance %d not in [0, %d]", p.Avoidance, MaxThreshold)
	}
	return nil
}

// String formats the profile as "piece:aggression:movement:avoidance".
func (p Profile) String() string {
	return fmt.Sprintf("%s:%d:%s:%d", p.Piece, p.Aggression, p.Movement, p.Avoidance)
}

// ParseProfile reads the format produced by String.
func ParseProfile(s string) (Profile, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), ":")
	if len(parts) != 4 {
		return Profile{}, fmt.Errorf("profile %q: want piece:aggression:movement:avoidance", s)
	}

	var p Profile
	switch parts[0] {
	case "getonboard":
		p.Piece = GetOnBoard
	case "finishpiece":
		p.Piece = FinishPiece
	default:
		return Profile{}, fmt.Errorf("profile %q: unknown piece preference %q", s, parts[0])
	}
	switch parts[2] {
	case "leader":
		p.Movement = Leader
	case "follower":
		p.Movement = Follower
	default:
		return Profile{}, fmt.Errorf("profile %q: unknown movement %q", s, parts[2])
	}

	var err error
	if p.Aggression, err = strconv.Atoi(parts[1]); err != nil {
		return Profile{}, fmt.Errorf("profile %q: aggression: %w", s, err)
	}
	if p.Avoidance, err = strconv.Atoi(parts[3]); err != nil {
		return Profile{}, fmt.Errorf("profile %q: avoidance: %w", s, err)
	}
	return p, p.Validate()
}
