package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"troubler/agent"
	"troubler/experiments"
	"troubler/experiments/metrics"
	"troubler/game"
	"troubler/meta"
	"troubler/store"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var colorCodes = map[string]string{
	game.Red.String():    "1",
	game.Green.String():  "2",
	game.Yellow.String(): "3",
	game.Blue.String():   "4",
}

func main() {
	_ = godotenv.Load()

	players := flag.Int("players", meta.DEFAULT_PLAYERS, "Number of players per game (2 to 4)")
	quantity := flag.Int("quantity", meta.DEFAULT_QUANTITY, "Number of games to simulate")
	seed := flag.Uint64("seed", 0, "Seed of the first game, 0 picks one from the clock")
	goroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of games simulated in parallel")
	agentKind := flag.String("agent", string(experiments.ProfileAgents), "Controller for every player: profile, random or rollout")
	profiles := flag.String("profile", "", "Comma-separated profiles by seat, as piece:aggression:movement:avoidance")
	lenient := flag.Bool("lenient", false, "Let a roll of 1 enter a piece too")
	episodes := flag.Int("episodes", agent.DefaultEpisodes, "Playouts per move for rollout agents")
	evaluation := flag.String("eval", "progress", "Playout evaluation for rollout agents: progress or threats")
	csvDir := flag.String("csv", "", "Directory to write game and turn records to")
	dbPath := flag.String("db", getEnv("TROUBLE_DB", ""), "SQLite database to store the run in")
	logLevel := flag.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if lvl, err := zerolog.ParseLevel(*logLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	kind, err := experiments.ParseAgentKind(*agentKind)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	seats, err := parseProfiles(*profiles)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	evaluate, err := parseEvaluation(*evaluation)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	cfg := experiments.Config{
		Players:    *players,
		Quantity:   *quantity,
		Goroutines: *goroutines,
		Seed:       *seed,
		Agent:      kind,
		Profiles:   seats,
		Lenient:    *lenient,
		Episodes:   *episodes,
		Evaluate:   evaluate,
		Turns:      *csvDir != "",
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := experiments.Run(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	if *csvDir != "" {
		if err := writeCSV(*csvDir, report); err != nil {
			log.Fatal().Err(err).Msg("failed to write records")
		}
	}
	if *dbPath != "" {
		if err := save(ctx, *dbPath, string(kind), report.Games); err != nil {
			log.Fatal().Err(err).Msg("failed to store run")
		}
	}

	printSummary(cfg, report)
}

func parseProfiles(s string) ([]agent.Profile, error) {
	if s == "" {
		return nil, nil
	}
	var profiles []agent.Profile
	for _, part := range strings.Split(s, ",") {
		p, err := agent.ParseProfile(part)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func parseEvaluation(s string) (game.Evaluate, error) {
	switch s {
	case "progress":
		return game.EvaluateProgress, nil
	case "threats":
		return game.EvaluateThreats, nil
	}
	return nil, fmt.Errorf("unknown evaluation %q", s)
}

func writeCSV(dir string, report experiments.Report) error {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords(report.Games); err != nil {
		return err
	}
	if err := writer.WriteTurnRecords(report.Turns); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored game and turn records")
	return nil
}

func save(ctx context.Context, dsn, kind string, games []metrics.GameRecord) error {
	s, err := store.Open(dsn)
	if err != nil {
		return err
	}
	defer s.Close()

	runID, err := s.SaveRun(ctx, kind, games)
	if err != nil {
		return err
	}
	log.Info().Int64("run", runID).Str("db", dsn).Msg("stored run")
	return nil
}

func printSummary(cfg experiments.Config, report experiments.Report) {
	out := termenv.NewOutput(os.Stdout)
	s := report.Summary

	if cfg.Quantity == 1 && len(report.Games) == 1 {
		printGame(out, report.Games[0])
	}

	fmt.Fprintf(out, "%s games: %d, draws: %d, failed: %d, seed: %d\n",
		out.String("Summary").Bold(), s.Games, s.Draws, s.Failures, cfg.Seed)
	for _, c := range game.AllColors {
		name := c.String()
		if s.Wins[name] == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-16s %5d wins (%.1f%%)\n", colored(out, name), s.Wins[name], 100*s.WinRate(name))
	}
	if s.Games-s.Draws-s.Failures > 0 {
		fmt.Fprintf(out, "  turns: mean %.1f, median %.0f, p90 %.0f, min %.0f, max %.0f\n",
			s.MeanTurns, s.MedianTurns, s.P90Turns, s.MinTurns, s.MaxTurns)
	}
	m := report.Metric
	fmt.Fprintf(out, "  captures: %d, forfeits: %d, elapsed: %s\n", m.Captures, m.Forfeits, m.Duration.Round(time.Millisecond))
}

func printGame(out *termenv.Output, record metrics.GameRecord) {
	seats := make([]string, len(record.Players))
	for i, p := range record.Players {
		seats[i] = colored(out, p)
		if i < len(record.Profiles) {
			seats[i] += " (" + record.Profiles[i] + ")"
		}
	}
	fmt.Fprintf(out, "Players: %s\n", strings.Join(seats, ", "))
	switch {
	case record.Err != "":
		fmt.Fprintf(out, "Game aborted: %s\n", record.Err)
	case record.Draw:
		fmt.Fprintf(out, "Draw after %d turns\n", record.Turns)
	default:
		fmt.Fprintf(out, "%s wins after %d turns\n", colored(out, record.Winner), record.Turns)
	}
}

func colored(out *termenv.Output, player string) string {
	return out.String(player).Foreground(out.Color(colorCodes[player])).Bold().String()
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
