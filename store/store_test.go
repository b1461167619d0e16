package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"troubler/experiments/metrics"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "data", "runs.db")

	s, err := Open(dsn)
	require.NoError(t, err)

	records := []metrics.GameRecord{
		{ID: 1, GameMetric: metrics.GameMetric{
			Seed:     1<<63 + 5,
			Players:  []string{"red", "green"},
			Profiles: []string{"getonboard:5:leader:5", "finishpiece:1:follower:0"},
			Winner:   "green",
			Turns:    120,
			Captures: 4,
			Duration: 1500 * time.Millisecond,
		}},
		{ID: 2, GameMetric: metrics.GameMetric{Seed: 6, Players: []string{"blue", "red"}, Draw: true, Turns: 5000}},
		{ID: 3, GameMetric: metrics.GameMetric{Seed: 7, Players: []string{"red", "yellow"}, Winner: "red", Turns: 90}},
	}

	t.Run("saves and reloads a run", func(t *testing.T) {
		runID, err := s.SaveRun(ctx, "profile", records)
		require.NoError(t, err)

		games, err := s.Games(ctx, runID)
		require.NoError(t, err)
		require.Len(t, games, 3)
		require.Equal(t, records[0].Seed, games[0].Seed)
		require.Equal(t, records[0].Players, games[0].Players)
		require.Equal(t, records[0].Profiles, games[0].Profiles)
		require.Equal(t, records[0].Duration, games[0].Duration)
		require.Equal(t, 4, games[0].Captures)
		require.True(t, games[1].Draw)
		require.Nil(t, games[1].Profiles)
		require.Equal(t, "red", games[2].Winner)
	})

	t.Run("counts wins across runs", func(t *testing.T) {
		_, err := s.SaveRun(ctx, "random", records[2:])
		require.NoError(t, err)

		wins, err := s.Wins(ctx)
		require.NoError(t, err)
		require.Equal(t, map[string]int{"green": 1, "red": 2}, wins)
	})

	t.Run("reopening keeps the data", func(t *testing.T) {
		require.NoError(t, s.Close())

		s, err = Open(dsn)
		require.NoError(t, err)
		defer s.Close()

		wins, err := s.Wins(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, wins["red"])
	})
}
