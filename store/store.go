// Package store persists simulation runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"troubler/experiments/metrics"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the database at dsn and applies any
// pending migrations.
func Open(dsn string) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded sql/*.sql files in lexical order, recording
// each in _migrations so it runs only once.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Debug().Str("migration", f).Msg("applied")
	}
	return nil
}

// SaveRun stores a run and all of its game records in one transaction and
// returns the new run's ID.
func (s *Store) SaveRun(ctx context.Context, agent string, records []metrics.GameRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO runs (agent, games) VALUES (?, ?)`, agent, len(records))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO games
            (run_id, game_id, seed, players, profiles, winner, draw, turns, captures, forfeits, completions, duration_ms, error)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range records {
		// go-sqlite3 rejects uint64 values with the high bit set
		_, err := stmt.ExecContext(ctx,
			runID, r.ID, int64(r.Seed),
			strings.Join(r.Players, ";"), strings.Join(r.Profiles, ";"),
			r.Winner, r.Draw, r.Turns, r.Captures, r.Forfeits, r.Completions,
			r.Duration.Milliseconds(), r.Err,
		)
		if err != nil {
			return 0, fmt.Errorf("insert game %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// Games returns the records of a run ordered by game ID.
func (s *Store) Games(ctx context.Context, runID int64) ([]metrics.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, seed, players, profiles, winner, draw, turns, captures, forfeits, completions, duration_ms, error
        FROM games
        WHERE run_id=?
        ORDER BY game_id ASC`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []metrics.GameRecord
	for rows.Next() {
		var (
			r                 metrics.GameRecord
			seed, durationMs  int64
			players, profiles string
		)
		if err := rows.Scan(&r.ID, &seed, &players, &profiles, &r.Winner, &r.Draw, &r.Turns,
			&r.Captures, &r.Forfeits, &r.Completions, &durationMs, &r.Err); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.Players = split(players)
		r.Profiles = split(profiles)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Wins counts the games each player has won across every stored run.
func (s *Store) Wins(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT winner, COUNT(1)
        FROM games
        WHERE winner != ''
        GROUP BY winner`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := map[string]int{}
	for rows.Next() {
		var (
			winner string
			count  int
		)
		if err := rows.Scan(&winner, &count); err != nil {
			return nil, err
		}
		wins[winner] = count
	}
	return wins, rows.Err()
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}
