package identity

import (
	"crypto/ed25519"
	"os"
	"testing"
)

func testSeed(fill byte) []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	return seed
}

func TestCreateLoadRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	created, path, err := s.Create("alice", testSeed(0x42), false)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	resolved, err := s.Principal("alice")
	if err != nil {
		t.Fatalf("Principal: %v", err)
	}
	if resolved != created {
		t.Fatalf("principal = %s, want %s", resolved.Text(), created.Text())
	}

	key, err := s.Load("alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(key) != ed25519.PrivateKeySize {
		t.Fatalf("key length = %d", len(key))
	}
}

func TestCreateRefusesOverwrite(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, _, err := s.Create("alice", testSeed(1), false); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, _, err := s.Create("alice", testSeed(2), false); err == nil {
		t.Fatal("expected an error without overwrite")
	}
	if _, _, err := s.Create("alice", testSeed(2), true); err != nil {
		t.Fatalf("Create with overwrite: %v", err)
	}
}

func TestCheckName(t *testing.T) {
	for _, name := range []string{"", "has space", "dot.dot", "../escape"} {
		if err := CheckName(name); err == nil {
			t.Fatalf("CheckName(%q) = nil, want error", name)
		}
	}
	for _, name := range []string{"alice", "node-1", "backup_key", "A9"} {
		if err := CheckName(name); err != nil {
			t.Fatalf("CheckName(%q) = %v", name, err)
		}
	}
}

func TestParseSeedHex(t *testing.T) {
	if _, err := ParseSeedHex("0x" + "ab"); err == nil {
		t.Fatal("short seed must be rejected")
	}
	seed, err := ParseSeedHex("0x4242424242424242424242424242424242424242424242424242424242424242")
	if err != nil {
		t.Fatalf("ParseSeedHex: %v", err)
	}
	if len(seed) != ed25519.SeedSize {
		t.Fatalf("seed length = %d", len(seed))
	}
}

func TestListSorted(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for _, name := range []string{"carol", "alice", "bob"} {
		if _, _, err := s.Create(name, testSeed(name[0]), false); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alice", "bob", "carol"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v", entries)
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entries[%d] = %s, want %s", i, entries[i].Name, name)
		}
		if entries[i].Principal.Empty() {
			t.Fatalf("entry %s has empty principal", name)
		}
	}
}
