// Package history keeps a log of the queries that were run.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/flaq/internal/db"
)

const (
	appName      = "flaq"
	dbFileName   = "flaq.db"
	DefaultLimit = 200
)

// Entry is one recorded query run.
type Entry struct {
	ID         int64
	Query      string
	Candidates int64
	Matched    *int64 // nil when the run failed
	Error      string // failure message of a failed run
	RanAt      time.Time
}

// Store is the query history database.
type Store struct {
	db    *sql.DB
	limit int
}

// Open opens the history database in the user's data directory.
// limit bounds the number of kept entries; zero means DefaultLimit.
func Open(limit int) (*Store, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath, limit)
}

// OpenAt opens the history database at path.
func OpenAt(path string, limit int) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// every connection would see its own empty database
		conn.SetMaxOpenConns(1)
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{db: conn, limit: limit}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores e and prunes the oldest entries beyond the limit.
func (s *Store) Record(e Entry) error {
	if e.RanAt.IsZero() {
		e.RanAt = time.Now()
	}
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO query_history (query, candidates, matched, error, ran_at)
			VALUES (?, ?, ?, ?, ?)
		`, e.Query, e.Candidates, db.PtrToNullInt64(e.Matched), db.StringToNull(e.Error), e.RanAt.UnixNano())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM query_history
			WHERE id NOT IN (
				SELECT id FROM query_history ORDER BY ran_at DESC, id DESC LIMIT ?
			)
		`, s.limit)
		return err
	})
}

// Recent returns up to n entries, newest first. n <= 0 returns them all.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = -1
	}
	rows, err := s.db.Query(`
		SELECT id, query, candidates, matched, error, ran_at
		FROM query_history
		ORDER BY ran_at DESC, id DESC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			matched sql.NullInt64
			errMsg  sql.NullString
			ranAt   int64
		)
		if err := rows.Scan(&e.ID, &e.Query, &e.Candidates, &matched, &errMsg, &ranAt); err != nil {
			return nil, err
		}
		e.Matched = db.NullInt64ToPtr(matched)
		e.Error = db.NullStringValue(errMsg)
		e.RanAt = time.Unix(0, ranAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes every entry.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM query_history`)
	return err
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
