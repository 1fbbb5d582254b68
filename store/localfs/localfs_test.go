package localfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/holykol/icrc7/store"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
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
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = s.Load(context.Background())
	if !store.IsNoSnapshot(err) {
		t.Fatalf("Load = %v, want ErrNoSnapshot", err)
	}
}

func TestSaveAdvancesHead(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, []byte(`{"seq":1}`)); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(ctx, []byte(`{"seq":2}`)); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"seq":2}` {
		t.Fatalf("Load = %s, want latest snapshot", got)
	}
}

func TestSaveIdempotent(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	b := []byte(`{"seq":1}`)
	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("repeated Save of identical bytes: %v", err)
	}
}

func TestLoadDetectsTampering(t *testing.T) {
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, []byte(`{"seq":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Flip the stored object's bytes behind the store's back.
	head, err := os.ReadFile(filepath.Join(root, "HEAD"))
	if err != nil {
		t.Fatalf("read HEAD: %v", err)
	}
	obj := filepath.Join(root, "objects", string(head)[:2], string(head))
	if err := os.Chmod(obj, 0o644); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	if err := os.WriteFile(obj, []byte(`{"seq":99}`), 0o644); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	_, err = s.Load(ctx)
	if !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("Load = %v, want ErrCorrupt", err)
	}
}
