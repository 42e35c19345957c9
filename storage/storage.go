// Package storage keeps the results of finished self-play games in SQLite.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"hexciv/experiments/metrics"
)

// Match is one finished game. Winner is zero for a draw or a turn limit stop.
type Match struct {
	ID         string
	Seed       int64
	MapSize    string
	Players    int
	Winner     int
	Turns      int
	TotalMoves int
	Duration   time.Duration
	FinalHash  uint64
	CreatedAt  time.Time
}

// WinCount is how many recorded games one seat has won.
type WinCount struct {
	Winner int `db:"winner"`
	Games  int `db:"games"`
}

type matchRow struct {
	ID         string `db:"id"`
	Seed       int64  `db:"seed"`
	MapSize    string `db:"map_size"`
	Players    int    `db:"players"`
	Winner     int    `db:"winner"`
	Turns      int    `db:"turns"`
	TotalMoves int    `db:"total_moves"`
	DurationMS int64  `db:"duration_ms"`
	FinalHash  string `db:"final_hash"`
	CreatedAt  int64  `db:"created_at"`
}

type Store struct {
	conn *sqlx.DB
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		map_size TEXT NOT NULL,
		players INTEGER NOT NULL,
		winner INTEGER NOT NULL,
		turns INTEGER NOT NULL,
		total_moves INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		final_hash TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// NewMatch turns a game record into a match with a fresh id.
func NewMatch(record metrics.GameRecord) Match {
	created := record.EndTime
	if created.IsZero() {
		created = time.Now()
	}
	return Match{
		ID:         uuid.NewString(),
		Seed:       record.Seed,
		MapSize:    record.MapSize,
		Players:    record.Players,
		Winner:     record.Winner,
		Turns:      record.Turns,
		TotalMoves: record.TotalMoves,
		Duration:   record.Duration,
		FinalHash:  record.FinalHash,
		CreatedAt:  created,
	}
}

// SaveMatch inserts m. An empty id is filled with a new uuid.
func (s *Store) SaveMatch(m Match) (string, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.conn.NamedExec(`INSERT INTO matches
		(id, seed, map_size, players, winner, turns, total_moves, duration_ms, final_hash, created_at)
		VALUES (:id, :seed, :map_size, :players, :winner, :turns, :total_moves, :duration_ms, :final_hash, :created_at)`,
		toRow(m))
	if err != nil {
		return "", fmt.Errorf("storage: save match: %w", err)
	}
	return m.ID, nil
}

// RecentMatches returns up to limit matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []matchRow
	err := s.conn.Select(&rows, `SELECT * FROM matches ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: recent matches: %w", err)
	}
	matches := make([]Match, 0, len(rows))
	for _, r := range rows {
		m, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// WinCounts tallies recorded games by winner, draws (winner 0) included.
func (s *Store) WinCounts() ([]WinCount, error) {
	var counts []WinCount
	err := s.conn.Select(&counts, `SELECT winner, COUNT(*) AS games FROM matches GROUP BY winner ORDER BY winner`)
	if err != nil {
		return nil, fmt.Errorf("storage: win counts: %w", err)
	}
	return counts, nil
}

// Hashes do not fit a signed sqlite integer, so they are kept as hex text.
func toRow(m Match) matchRow {
	return matchRow{
		ID:         m.ID,
		Seed:       m.Seed,
		MapSize:    m.MapSize,
		Players:    m.Players,
		Winner:     m.Winner,
		Turns:      m.Turns,
		TotalMoves: m.TotalMoves,
		DurationMS: m.Duration.Milliseconds(),
		FinalHash:  strconv.FormatUint(m.FinalHash, 16),
		CreatedAt:  m.CreatedAt.UnixNano(),
	}
}

func fromRow(r matchRow) (Match, error) {
	hash, err := strconv.ParseUint(r.FinalHash, 16, 64)
	if err != nil {
		return Match{}, fmt.Errorf("storage: match %s has a bad hash %q: %w", r.ID, r.FinalHash, err)
	}
	return Match{
		ID:         r.ID,
		Seed:       r.Seed,
		MapSize:    r.MapSize,
		Players:    r.Players,
		Winner:     r.Winner,
		Turns:      r.Turns,
		TotalMoves: r.TotalMoves,
		Duration:   time.Duration(r.DurationMS) * time.Millisecond,
		FinalHash:  hash,
		CreatedAt:  time.Unix(0, r.CreatedAt),
	}, nil
}
