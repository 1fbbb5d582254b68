package sqlitestore

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/holykol/icrc7/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := []byte(`{"seq":3}`)
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("Load = %s, want %s", got, want)
	}
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load(context.Background())
	if !store.IsNoSnapshot(err) {
		t.Fatalf("Load = %v, want ErrNoSnapshot", err)
	}
}

func TestLoadReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := s.Save(ctx, []byte(fmt.Sprintf(`{"seq":%d}`, i))); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"seq":3}` {
		t.Fatalf("Load = %s, want newest snapshot", got)
	}
}

func TestHistoryPruned(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < keepSnapshots+5; i++ {
		if err := s.Save(ctx, []byte(fmt.Sprintf(`{"seq":%d}`, i))); err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != keepSnapshots {
		t.Fatalf("retained rows = %d, want %d", n, keepSnapshots)
	}
}
