package agent

import (
	"fmt"
	"sync"

	"troubler/dice"
	"troubler/game"
)

const (
	DefaultEpisodes = 64
	DefaultCutoff   = 400
)

type Option func(r *RolloutAgent)

// RolloutAgent scores each legal move by random playouts from the position
// after the move and picks the move with the best average outcome.
type RolloutAgent struct {
	goroutines int
	episodes   int // playouts per legal move
	cutoff     int // turns per playout before evaluating
	seed       uint64
	evaluate   game.Evaluate
}

func WithGoroutines(goroutines int) Option {
	return func(r *RolloutAgent) {
		if goroutines > 0 {
			r.goroutines = goroutines
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(r *RolloutAgent) {
		if episodes > 0 {
			r.episodes = episodes
		}
	}
}

func WithCutoff(turns int) Option {
	return func(r *RolloutAgent) {
		if turns > 0 {
			r.cutoff = turns
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(r *RolloutAgent) {
		r.seed = seed
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(r *RolloutAgent) {
		if evaluate != nil {
			r.evaluate = evaluate
		}
	}
}

func NewRolloutAgent(options ...Option) *RolloutAgent {
	r := &RolloutAgent{ // Default values
		goroutines: 1,
		episodes:   DefaultEpisodes,
		cutoff:     DefaultCutoff,
		evaluate:   game.EvaluateProgress,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

type episode struct {
	move  int
	index int
}

func (r *RolloutAgent) ChooseMove(gs *game.GameState) *game.Move {
	moves := gs.LegalMoves()
	switch len(moves) {
	case 0:
		return nil
	case 1:
		return &moves[0]
	}

	task := make(chan episode, len(moves)*r.episodes)
	for m := range moves {
		for i := 0; i < r.episodes; i++ {
			task <- episode{move: m, index: i}
		}
	}
	close(task)

	// Every episode owns a roller seeded from the position, so the outcome
	// does not depend on how episodes are scheduled across goroutines.
	base := r.seed ^ uint64(gs.Hash())
	rewards := make([][]float64, len(moves))
	for m := range rewards {
		rewards[m] = make([]float64, r.episodes)
	}
	var wg sync.WaitGroup
	for g := 0; g < r.goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for e := range task {
				roller := dice.NewSource(base + uint64(e.move*r.episodes+e.index))
				rewards[e.move][e.index] = r.playout(gs, moves[e.move], roller)
			}
		}()
	}
	wg.Wait()

	best, bestTotal := 0, -1.0
	for m := range moves {
		total := 0.0
		for _, reward := range rewards[m] {
			total += reward
		}
		if total > bestTotal {
			best, bestTotal = m, total
		}
	}
	return &moves[best]
}

// playout applies move to a copy of the state, then plays random legal moves
// for every player until the game ends or the cutoff is reached. The reward
// lies in [0, 1] from the mover's perspective.
func (r *RolloutAgent) playout(gs *game.GameState, move game.Move, roller dice.Roller) float64 {
	state := gs.Clone()
	mover := state.Active().Color
	random := NewRandomAgent(roller)

	mustPlay(state, &move)
	for depth := 0; depth < r.cutoff && state.Phase != game.GameOver; depth++ {
		if err := state.Roll(roller.Roll(state.Rules.DieMin(), state.Rules.DieMax())); err != nil {
			panic(err)
		}
		mustPlay(state, random.ChooseMove(state))
	}

	return (r.evaluate(state, mover) + 1) / 2
}

// mustPlay applies a move chosen from the state's own legal moves; failure
// means the rules are inconsistent.
func mustPlay(state *game.GameState, move *game.Move) {
	if _, err := state.Apply(move); err != nil {
		panic(fmt.Sprintf("playout: %v", err))
	}
	if err := state.EndTurn(); err != nil {
		panic(fmt.Sprintf("playout: %v", err))
	}
}
