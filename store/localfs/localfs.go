// Package localfs stores ledger snapshots on the local filesystem.
//
// Snapshots are content-addressed: each one lives in an immutable file named
// by the CIDv1 (raw + sha2-256) of its bytes, and a HEAD file points at the
// current one. HEAD is replaced atomically, so a crash mid-save leaves the
// previous snapshot intact and loadable.
package localfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/holykol/icrc7/store"
)

const headFile = "HEAD"

// Store is a filesystem-backed snapshot store. It is offline and
// deterministic: it never uses the network and never depends on wall-clock
// time.
type Store struct {
	root string
}

// New constructs a snapshot store rooted at root. The directory is created if
// needed.
func New(root string) (*Store, error) {
	if root == "" {
		return nil, errors.New("localfs: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// Save writes the snapshot as an immutable content-addressed object and
// repoints HEAD at it.
func (s *Store) Save(ctx context.Context, snapshot []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := snapshotCID(snapshot)
	if err != nil {
		return err
	}
	if err := s.putObject(id, snapshot); err != nil {
		return err
	}
	return s.setHead(id)
}

// Load reads the snapshot HEAD points at, verifying its content address.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(filepath.Join(s.root, headFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNoSnapshot
		}
		return nil, err
	}
	id, err := cid.Decode(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed HEAD: %v", store.ErrCorrupt, err)
	}

	b, err := os.ReadFile(s.pathFor(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: HEAD names a missing object %s", store.ErrCorrupt, id)
		}
		return nil, err
	}
	got, err := snapshotCID(b)
	if err != nil {
		return nil, err
	}
	if got != id {
		return nil, fmt.Errorf("%w: object %s fails its content address", store.ErrCorrupt, id)
	}
	return b, nil
}

func (s *Store) Close() error { return nil }

// putObject is idempotent: rewriting identical bytes succeeds, rewriting
// different bytes under the same address reports corruption.
func (s *Store) putObject(id cid.Cid, b []byte) error {
	path := s.pathFor(id)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o444)
	if err != nil {
		if os.IsExist(err) {
			existing, rerr := os.ReadFile(path)
			if rerr != nil || string(existing) != string(b) {
				return fmt.Errorf("%w: object %s exists with different bytes", store.ErrCorrupt, id)
			}
			return nil
		}
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// setHead replaces HEAD via write-to-temp then rename, so readers always see
// either the old or the new pointer.
func (s *Store) setHead(id cid.Cid) error {
	tmp, err := os.CreateTemp(s.root, headFile+".tmp-")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(id.String()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.root, headFile)); err != nil {
		return err
	}

	dir, err := os.Open(s.root)
	if err != nil {
		return err
	}
	defer dir.Close()
	return dir.Sync()
}

func (s *Store) pathFor(id cid.Cid) string {
	name := id.String()
	return filepath.Join(s.root, "objects", name[:2], name)
}

func snapshotCID(b []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(b, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
