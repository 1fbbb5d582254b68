// Package store defines the snapshot persistence boundary used by the ledger
// daemon. The ledger itself is I/O-free; a Store carries its serialized state
// across restarts.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNoSnapshot means the store holds no snapshot yet. Callers start
	// from a fresh ledger in that case.
	ErrNoSnapshot = errors.New("store: no snapshot")
	// ErrCorrupt means stored bytes fail their integrity check.
	ErrCorrupt = errors.New("store: snapshot corrupt")
)

// IsNoSnapshot reports whether err signals an empty store.
func IsNoSnapshot(err error) bool { return errors.Is(err, ErrNoSnapshot) }

// Store persists ledger snapshots.
//
// Contract:
//   - Save MUST be durable once it returns nil.
//   - Load MUST return the bytes of the most recent successful Save.
//   - Load MUST return ErrNoSnapshot when nothing was saved yet.
type Store interface {
	Save(ctx context.Context, snapshot []byte) error
	Load(ctx context.Context) ([]byte, error)
	Close() error
}
