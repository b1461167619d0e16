package experiments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"troubler/agent"
	"troubler/engine"
	"troubler/game"
)

func TestConfigValidate(t *testing.T) {
	valid := Config{Players: 3, Quantity: 1, Goroutines: 1, Agent: ProfileAgents}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"too few players":  func(c *Config) { c.Players = 1 },
		"too many players": func(c *Config) { c.Players = 5 },
		"no games":         func(c *Config) { c.Quantity = 0 },
		"no workers":       func(c *Config) { c.Goroutines = 0 },
		"unknown agent":    func(c *Config) { c.Agent = "oracle" },
		"too many profiles": func(c *Config) {
			c.Profiles = make([]agent.Profile, 4)
		},
		"bad profile": func(c *Config) {
			c.Profiles = []agent.Profile{{Aggression: 11}}
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrConfig)
		})
	}
}

func TestParseAgentKind(t *testing.T) {
	kind, err := ParseAgentKind("Rollout")
	require.NoError(t, err)
	require.Equal(t, RolloutAgents, kind)

	_, err = ParseAgentKind("minimax")
	require.ErrorIs(t, err, ErrConfig)
}

func TestRun(t *testing.T) {
	t.Run("records every game", func(t *testing.T) {
		cfg := Config{Players: 3, Quantity: 6, Goroutines: 3, Seed: 11, Agent: ProfileAgents, Turns: true,
			Engine: []engine.Option{engine.WithInvariantChecks()}}

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, report.Games, 6)
		turns := 0
		for i, record := range report.Games {
			require.Equal(t, i+1, record.ID)
			require.Equal(t, uint64(11+i), record.Seed)
			require.Empty(t, record.Err)
			require.Len(t, record.Players, 3)
			require.Len(t, record.Profiles, 3)
			if !record.Draw {
				require.Contains(t, record.Players, record.Winner)
			}
			turns += record.Turns
		}
		require.Len(t, report.Turns, turns)
		require.Equal(t, turns, report.Metric.Turns)
		require.Equal(t, 6, report.Metric.Games)
		require.Equal(t, 6, report.Summary.Games)
	})

	t.Run("the same seed replays the same games", func(t *testing.T) {
		cfg := Config{Players: 4, Quantity: 4, Goroutines: 4, Seed: 3, Agent: RandomAgents}

		first, err := Run(context.Background(), cfg)
		require.NoError(t, err)
		cfg.Goroutines = 1
		second, err := Run(context.Background(), cfg)
		require.NoError(t, err)

		for i := range first.Games {
			require.Equal(t, first.Games[i].Players, second.Games[i].Players)
			require.Equal(t, first.Games[i].Winner, second.Games[i].Winner)
			require.Equal(t, first.Games[i].Turns, second.Games[i].Turns)
		}
	})

	t.Run("given profiles are used by seat", func(t *testing.T) {
		profiles := []agent.Profile{
			{Piece: agent.FinishPiece, Aggression: 10, Movement: agent.Follower, Avoidance: 0},
			agent.DefaultProfile(),
		}
		cfg := Config{Players: 2, Quantity: 2, Goroutines: 1, Agent: ProfileAgents, Profiles: profiles}

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		for _, record := range report.Games {
			require.Equal(t, []string{profiles[0].String(), profiles[1].String()}, record.Profiles)
		}
	})

	t.Run("rollout agents", func(t *testing.T) {
		cfg := Config{Players: 2, Quantity: 1, Goroutines: 1, Seed: 5, Agent: RolloutAgents, Episodes: 2,
			Evaluate: game.EvaluateThreats}

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Len(t, report.Games, 1)
		require.Empty(t, report.Games[0].Err)
		require.Empty(t, report.Games[0].Profiles)
	})

	t.Run("stalled games are draws", func(t *testing.T) {
		cfg := Config{Players: 2, Quantity: 2, Goroutines: 2, Agent: RandomAgents,
			Engine: []engine.Option{engine.WithMaxTurns(1)}}

		report, err := Run(context.Background(), cfg)

		require.NoError(t, err)
		require.Equal(t, 2, report.Summary.Draws)
		require.Equal(t, 2, report.Metric.Draws)
		for _, record := range report.Games {
			require.True(t, record.Draw)
			require.Empty(t, record.Winner)
		}
	})

	t.Run("a cancelled context stops the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		cfg := Config{Players: 2, Quantity: 100, Goroutines: 1, Agent: RandomAgents}

		_, err := Run(ctx, cfg)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("an invalid config is rejected", func(t *testing.T) {
		_, err := Run(context.Background(), Config{Players: 9, Quantity: 1, Goroutines: 1, Agent: RandomAgents})

		require.ErrorIs(t, err, ErrConfig)
	})
}
