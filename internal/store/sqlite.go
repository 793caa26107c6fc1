package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

var (
	_ Store = (*SQLiteStore)(nil)
	_ Tx    = (*sqlTx)(nil)
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
// Any failure here is reported as ErrUnavailable.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, unavailable("create db dir", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=synchronous(normal)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, unavailable("open db", err)
	}
	// One connection: SQLite has a single writer, and this makes the
	// driver serialize transactions instead of returning SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, unavailable("connect db", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, unavailable("migrate", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pets (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		species     TEXT NOT NULL,
		breed       TEXT NOT NULL,
		birth_date  TEXT NOT NULL,
		photo_data  TEXT,
		created_at  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		id              TEXT PRIMARY KEY,
		pet_id          TEXT NOT NULL,
		type            TEXT NOT NULL,
		date            TEXT NOT NULL,
		title           TEXT NOT NULL,
		description     TEXT NOT NULL,
		doctor_name     TEXT,
		next_due_date   TEXT,
		attachment_data TEXT,
		attachment_type TEXT,
		created_at      INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_records_pet ON records(pet_id);
	CREATE INDEX IF NOT EXISTS idx_records_next_due ON records(next_due_date);

	CREATE TABLE IF NOT EXISTS markers (
		name  TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < schemaVersion {
		if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}

// View runs fn inside a read transaction that is rolled back afterwards.
func (s *SQLiteStore) View(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return failure("begin read", err)
	}
	defer tx.Rollback()

	return fn(&sqlTx{tx: tx})
}

// Update runs fn inside a write transaction and commits if fn succeeds.
func (s *SQLiteStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return failure("begin write", err)
	}
	defer tx.Rollback()

	if err := fn(&sqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return failure("commit", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// sqlTx implements Tx over a database/sql transaction.
type sqlTx struct {
	tx *sql.Tx
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
