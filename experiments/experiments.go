// Package experiments runs batches of simulated games and collects their records.
package experiments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"troubler/agent"
	"troubler/dice"
	"troubler/engine"
	"troubler/experiments/metrics"
	"troubler/game"

	"github.com/rs/zerolog/log"
)

type AgentKind string

const (
	ProfileAgents AgentKind = "profile"
	RandomAgents  AgentKind = "random"
	RolloutAgents AgentKind = "rollout"
)

var ErrConfig = errors.New("invalid simulation config")

func ParseAgentKind(s string) (AgentKind, error) {
	switch kind := AgentKind(strings.ToLower(s)); kind {
	case ProfileAgents, RandomAgents, RolloutAgents:
		return kind, nil
	}
	return "", fmt.Errorf("%w: unknown agent %q", ErrConfig, s)
}

type Config struct {
	Players    int
	Quantity   int
	Goroutines int
	Seed       uint64 // game i rolls with Seed+i
	Agent      AgentKind
	Profiles   []agent.Profile // by seat; seats without one draw a random profile
	Lenient    bool            // a 1 also enters a piece
	Episodes   int             // playouts per move for rollout agents
	Evaluate   game.Evaluate   // playout evaluation for rollout agents
	Turns      bool            // keep a record of every turn
	Engine     []engine.Option
}

type Report struct {
	Games   []metrics.GameRecord
	Turns   []metrics.TurnRecord
	Metric  metrics.RunMetric
	Summary metrics.Summary
}

func (c Config) Validate() error {
	switch {
	case c.Players < game.MinPlayers || c.Players > game.MaxPlayers:
		return fmt.Errorf("%w: %d players, want %d to %d", ErrConfig, c.Players, game.MinPlayers, game.MaxPlayers)
	case c.Quantity < 1:
		return fmt.Errorf("%w: quantity %d", ErrConfig, c.Quantity)
	case c.Goroutines < 1:
		return fmt.Errorf("%w: %d goroutines", ErrConfig, c.Goroutines)
	case len(c.Profiles) > c.Players:
		return fmt.Errorf("%w: %d profiles for %d players", ErrConfig, len(c.Profiles), c.Players)
	}
	if _, err := ParseAgentKind(string(c.Agent)); err != nil {
		return err
	}
	for _, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrConfig, err)
		}
	}
	return nil
}

// Run simulates cfg.Quantity games on a pool of workers. A game that fails
// is recorded with its error and the run carries on with the others.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	log.Info().Msgf("starting %d %s games with %d players...", cfg.Quantity, cfg.Agent, cfg.Players)

	collector := metrics.NewCollector()
	collector.Start()

	games := make([]metrics.GameRecord, cfg.Quantity)
	turns := make([][]metrics.TurnRecord, cfg.Quantity)
	tasks := make(chan int)

	var wg sync.WaitGroup
	for g, n := 0, min(cfg.Goroutines, cfg.Quantity); g < n; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				games[i], turns[i] = runGame(cfg, i, collector)
			}
		}()
	}

	var err error
dispatch:
	for i := 0; i < cfg.Quantity; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case tasks <- i:
		}
	}
	close(tasks)
	wg.Wait()
	if err != nil {
		return Report{}, err
	}

	report := Report{Games: games, Metric: collector.Complete()}
	for _, t := range turns {
		report.Turns = append(report.Turns, t...)
	}
	report.Summary = metrics.Summarize(games)

	log.Info().Msgf("completed %d games in %s", cfg.Quantity, report.Metric.Duration)
	return report, nil
}

// runGame plays game i to the end and returns its record.
func runGame(cfg Config, i int, collector metrics.Collector) (metrics.GameRecord, []metrics.TurnRecord) {
	seed := cfg.Seed + uint64(i)
	record := metrics.GameRecord{
		ID: i + 1,
		GameMetric: metrics.GameMetric{
			Seed:      seed,
			Agent:     string(cfg.Agent),
			StartTime: time.Now(),
		},
	}
	fail := func(err error) (metrics.GameRecord, []metrics.TurnRecord) {
		record.Err = err.Error()
		collector.AddFailure()
		log.Error().Err(err).Int("game", record.ID).Uint64("seed", seed).Msg("game aborted")
		return record, nil
	}

	roller := dice.NewSource(seed)
	colors, err := dice.Choose(roller, cfg.Players, game.AllColors)
	if err != nil {
		return fail(err)
	}
	for _, c := range colors {
		record.Players = append(record.Players, c.String())
	}

	var rules game.Rules = game.NewStandardRules()
	if cfg.Lenient {
		rules = game.NewLenientRules()
	}
	gs, err := game.NewGameState(colors, rules)
	if err != nil {
		return fail(err)
	}

	agents := map[game.Color]agent.Agent{}
	for seat, c := range colors {
		switch cfg.Agent {
		case RandomAgents:
			agents[c] = agent.NewRandomAgent(roller)
		case RolloutAgents:
			agents[c] = agent.NewRolloutAgent(
				agent.WithSeed(seed+uint64(seat)),
				agent.WithEpisodes(cfg.Episodes),
				agent.WithEvaluationFn(cfg.Evaluate),
			)
		default:
			profile := agent.RandomProfile(roller)
			if seat < len(cfg.Profiles) {
				profile = cfg.Profiles[seat]
			}
			record.Profiles = append(record.Profiles, profile.String())
			agents[c] = agent.NewPolicy(profile, rules)
		}
	}

	var turns []metrics.TurnRecord
	options := []engine.Option{
		engine.WithObserver(func(event game.TurnEvent) {
			collector.AddTurn(event.Forfeit(), event.Captured != nil)
		}),
	}
	if cfg.Turns {
		options = append(options, engine.WithObserver(func(event game.TurnEvent) {
			turns = append(turns, metrics.TurnRecord{Game: record.ID, TurnMetric: turnMetric(event)})
		}))
	}
	options = append(options, cfg.Engine...)

	e, err := engine.New(gs, agents, roller, options...)
	if err != nil {
		return fail(err)
	}
	result, err := e.Run()

	record.EndTime = time.Now()
	record.Duration = record.EndTime.Sub(record.StartTime)
	record.Turns = result.Turns
	record.Captures = result.Captures
	record.Forfeits = result.Forfeits
	record.Completions = result.Completions

	switch {
	case errors.Is(err, engine.ErrStalemate):
		record.Draw = true
		collector.AddGame(true)
		log.Warn().Int("game", record.ID).Int("turns", result.Turns).Msg("game ended in a draw")
	case err != nil:
		r, _ := fail(err)
		return r, turns
	default:
		record.Winner = result.Winner.String()
		collector.AddGame(false)
		log.Debug().Int("game", record.ID).Str("winner", record.Winner).Int("turns", result.Turns).Msg("game over")
	}
	return record, turns
}

func turnMetric(event game.TurnEvent) metrics.TurnMetric {
	m := metrics.TurnMetric{
		Turn:      event.Turn,
		Player:    event.Player.String(),
		Roll:      event.Roll,
		ExtraTurn: event.ExtraTurn,
	}
	if event.Move != nil {
		m.Move = event.Move.String()
	}
	if event.Captured != nil {
		m.Captured = event.Captured.Victim.String()
	}
	return m
}
