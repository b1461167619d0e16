package engine

import (
	"fmt"

	"troubler/agent"
	"troubler/dice"
	"troubler/game"
	"troubler/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// Engine drives one game: it rolls for the active player, asks that player's
// agent for a move, applies it and ends the turn.
type Engine struct {
	State           *game.GameState
	Agents          map[game.Color]agent.Agent
	roller          dice.Roller
	maxTurns        int
	stalemateRounds int
	observers       []Observer
	checkInvariants bool
	forfeitStreak   int
	result          Result
}

func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

func WithStalemateRounds(rounds int) Option {
	return func(e *Engine) {
		if rounds > 0 {
			e.stalemateRounds = rounds
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

// WithInvariantChecks verifies piece conservation and occupancy after every turn.
func WithInvariantChecks() Option {
	return func(e *Engine) {
		e.checkInvariants = true
	}
}

func New(state *game.GameState, agents map[game.Color]agent.Agent, roller dice.Roller, options ...Option) (*Engine, error) {
	for _, p := range state.Players {
		if agents[p.Color] == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingAgent, p.Color)
		}
	}

	e := &Engine{ // Default values
		State:           state,
		Agents:          agents,
		roller:          roller,
		maxTurns:        meta.MAX_TURNS,
		stalemateRounds: meta.STALEMATE_ROUNDS,
	}
	for _, option := range options {
		option(e)
	}
	return e, nil
}

// Turn resolves a single turn. Any error means the rules or an agent are
// broken and the game must be abandoned.
func (e *Engine) Turn() (game.TurnEvent, error) {
	rules := e.State.Rules
	player := e.State.Active().Color

	roll := e.roller.Roll(rules.DieMin(), rules.DieMax())
	if err := e.State.Roll(roll); err != nil {
		return game.TurnEvent{}, fmt.Errorf("turn %d: %w", e.State.Turns, err)
	}

	move := e.Agents[player].ChooseMove(e.State)
	event, err := e.State.Apply(move)
	if err != nil {
		return game.TurnEvent{}, fmt.Errorf("turn %d: %s's agent: %w", e.State.Turns, player, err)
	}
	if err := e.State.EndTurn(); err != nil {
		return game.TurnEvent{}, fmt.Errorf("turn %d: %w", event.Turn, err)
	}
	if e.checkInvariants {
		if err := e.State.CheckInvariants(); err != nil {
			return game.TurnEvent{}, fmt.Errorf("turn %d: %w", event.Turn, err)
		}
	}

	e.record(event)
	for _, observe := range e.observers {
		observe(event)
	}
	return event, nil
}

func (e *Engine) record(event game.TurnEvent) {
	e.result.Turns++
	if event.Forfeit() {
		e.result.Forfeits++
		e.forfeitStreak++
	} else {
		e.forfeitStreak = 0
	}
	if event.Captured != nil {
		e.result.Captures++
	}
	if event.Completed {
		e.result.Completions++
	}
	if event.Won {
		e.result.Winner = event.Winner
	}
}

// Run plays until a player wins. A game where nobody can move for
// stalemateRounds full rounds, or that exceeds maxTurns, ends as a draw and
// reports ErrStalemate.
func (e *Engine) Run() (Result, error) {
	log.Debug().Msgf("player %s is starting", e.State.Active().Color)

	for e.State.Phase != game.GameOver {
		if _, err := e.Turn(); err != nil {
			return e.result, err
		}

		if e.forfeitStreak >= e.stalemateRounds*len(e.State.Players) {
			e.result.Draw = true
			return e.result, fmt.Errorf("%w: no moves for %d rounds", ErrStalemate, e.stalemateRounds)
		}
		if e.result.Turns >= e.maxTurns && e.State.Phase != game.GameOver {
			e.result.Draw = true
			return e.result, fmt.Errorf("%w: no winner after %d turns", ErrStalemate, e.maxTurns)
		}
	}

	log.Debug().Msgf("player %s won after %d turns", e.result.Winner, e.result.Turns)
	return e.result, nil
}

// LogEvent is an Observer that writes each turn to the debug log.
func LogEvent(event game.TurnEvent) {
	entry := log.Debug().
		Int("turn", event.Turn).
		Str("player", event.Player.String()).
		Int("roll", event.Roll)
	if event.Forfeit() {
		entry = entry.Bool("forfeit", true)
	} else {
		entry = entry.Str("move", event.Move.String())
	}
	if event.Captured != nil {
		entry = entry.Str("captured", event.Captured.Victim.String())
	}
	for _, b := range event.Buckets {
		entry = entry.Str(b.Player.String(), fmt.Sprintf("%d/%d/%d", b.NotInGame, b.InGame, b.Complete))
	}
	entry.Bool("extra", event.ExtraTurn).Msg("turn")
}
