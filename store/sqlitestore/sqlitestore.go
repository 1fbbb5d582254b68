// Package sqlitestore stores ledger snapshots in a SQLite database. Each
// save appends a row; loads read the newest, so a partial write never
// clobbers the previous snapshot. Old rows are pruned to a small history.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/holykol/icrc7/store"
)

// keepSnapshots bounds how much history a database accumulates.
const keepSnapshots = 8

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	data       BLOB    NOT NULL
);
`

// Store persists snapshots in a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlitestore: database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlitestore: ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save appends the snapshot and prunes rows beyond the retained history.
func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (created_at, data) VALUES (?, ?)`,
		time.Now().UnixNano(), snapshot,
	); err != nil {
		return fmt.Errorf("sqlitestore: insert snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
		)`, keepSnapshots,
	); err != nil {
		return fmt.Errorf("sqlitestore: prune snapshots: %w", err)
	}
	return tx.Commit()
}

// Load returns the most recently saved snapshot.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: load snapshot: %w", err)
	}
	return data, nil
}

func (s *Store) Close() error { return s.db.Close() }
