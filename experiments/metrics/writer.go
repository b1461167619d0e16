package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type GameRecord struct {
	ID int
	GameMetric
}

type TurnRecord struct {
	Game int // GameRecord.ID
	TurnMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of dir named by the current timestamp.
func NewWriter(dir string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(dir, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "seed", "agent", "players", "profiles", "winner", "draw", "turns", "captures", "forfeits", "completions", "start_time", "end_time", "duration", "error"}
	return w.write("game_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			record.Agent,
			strings.Join(record.Players, ";"),
			strings.Join(record.Profiles, ";"),
			record.Winner,
			strconv.FormatBool(record.Draw),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.Captures),
			strconv.Itoa(record.Forfeits),
			strconv.Itoa(record.Completions),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			record.Err,
		}
	})
}

func (w *Writer) WriteTurnRecords(records []TurnRecord) error {
	header := []string{"game", "turn", "player", "roll", "move", "captured", "extra_turn"}
	return w.write("turn_records.csv", header, len(records), func(i int) []string {
		record := records[i]
		return []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			record.Player,
			strconv.Itoa(record.Roll),
			record.Move,
			record.Captured,
			strconv.FormatBool(record.ExtraTurn),
		}
	})
}

func (w *Writer) write(name string, header []string, rows int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < rows; i++ {
		err = writer.Write(row(i))
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
