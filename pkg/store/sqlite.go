package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lexgrep/lexgrep/pkg/types"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	language TEXT NOT NULL,
	subject  TEXT NOT NULL,
	created  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS matches (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        INTEGER NOT NULL REFERENCES runs(id),
	name          TEXT NOT NULL,
	start_line    INTEGER NOT NULL,
	start_column  INTEGER NOT NULL,
	end_line      INTEGER NOT NULL,
	end_column    INTEGER NOT NULL,
	captures_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_matches_run ON matches(run_id);
`

// SQLiteStore implements Store using SQLite (pure-Go driver, no CGO).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-backed store at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// AddRun records an execution and returns its ID.
func (s *SQLiteStore) AddRun(language, subject string) (int64, error) {
	res, err := s.db.Exec("INSERT INTO runs (language, subject) VALUES (?, ?)", language, subject)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return id, nil
}

// AddMatch records a match under a run.
func (s *SQLiteStore) AddMatch(runID int64, m types.Match) error {
	_, err := s.db.Exec(`
		INSERT INTO matches (run_id, name, start_line, start_column, end_line, end_column, captures_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		m.Name,
		m.Start.Line,
		m.Start.Column,
		m.End.Line,
		m.End.Column,
		m.CapturesJSON(),
	)
	if err != nil {
		return fmt.Errorf("inserting match: %w", err)
	}
	return nil
}

// GetMatches retrieves the matches of one run in insertion order.
func (s *SQLiteStore) GetMatches(runID int64) ([]types.Match, error) {
	rows, err := s.db.Query(`
		SELECT name, start_line, start_column, end_line, end_column, captures_json
		FROM matches WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	var matches []types.Match
	for rows.Next() {
		var (
			m        types.Match
			captures string
		)
		if err := rows.Scan(&m.Name, &m.Start.Line, &m.Start.Column, &m.End.Line, &m.End.Column, &captures); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		var obj map[string]string
		if err := json.Unmarshal([]byte(captures), &obj); err != nil {
			return nil, fmt.Errorf("decoding captures: %w", err)
		}
		if len(obj) > 0 {
			m.Captures = make(map[string][]byte, len(obj))
			for k, v := range obj {
				m.Captures[k] = []byte(v)
			}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// GetRuns retrieves all recorded runs.
func (s *SQLiteStore) GetRuns() ([]Run, error) {
	rows, err := s.db.Query("SELECT id, language, subject FROM runs ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Language, &r.Subject); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
