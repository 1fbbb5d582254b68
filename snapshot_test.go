package icrc7

import (
	"errors"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	f := newFixture(t, InitArgs{Description: "flight badges", Royalties: 250, SupplyCap: 100})
	a := f.mint(t, 1, AccountFromOwner(f.alice))
	b := f.mint(t, 2, AccountFromOwner(f.alice))
	if _, err := f.ledger.Approve(f.alice, ApproveArgs{To: f.bob, TokenIDs: NewTokenIDSet(b)}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	transferIdx, err := f.ledger.Transfer(f.alice, TransferArgs{
		To:            AccountFromOwner(f.carol),
		TokenIDs:      NewTokenIDSet(a),
		CreatedAtTime: testNow,
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	data, err := f.ledger.MarshalSnapshot()
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	restored, err := RestoreSnapshot(data)
	if err != nil {
		t.Fatalf("restore snapshot: %v", err)
	}
	restored.WithClock(func() uint64 { return f.now })

	if got := restored.Name(); got != f.ledger.Name() {
		t.Fatalf("name = %q, want %q", got, f.ledger.Name())
	}
	if got := restored.TotalSupply(); got != 2 {
		t.Fatalf("total supply = %d, want 2", got)
	}
	if got, ok := restored.OwnerOf(a); !ok || !got.Equal(AccountFromOwner(f.carol)) {
		t.Fatalf("owner of %s = %v, want carol", a, got)
	}

	// Dedup state survives: replaying the original request is still detected.
	_, err = restored.Transfer(f.alice, TransferArgs{
		To:            AccountFromOwner(f.carol),
		TokenIDs:      NewTokenIDSet(a),
		CreatedAtTime: testNow,
	})
	var terr *TransferError
	if !errors.As(err, &terr) || terr.Kind != TransferDuplicate || terr.DuplicateOf != transferIdx {
		t.Fatalf("error = %v, want Duplicate of %d", err, transferIdx)
	}

	// Approvals survive with their indexes intact.
	from := AccountFromOwner(f.alice)
	if !restored.isApproved(from, f.bob, b, f.now) {
		t.Fatal("approval must survive the round trip")
	}

	// The sequence resumes, never reuses indexes.
	nextIdx, err := restored.MintToken(f.authority, MintArgs{ID: NewTokenID(3), Owner: AccountFromOwner(f.bob)})
	if err != nil {
		t.Fatalf("mint after restore: %v", err)
	}
	if nextIdx != transferIdx+1 {
		t.Fatalf("next index = %d, want %d", nextIdx, transferIdx+1)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	f := newFixture(t, InitArgs{})
	for _, id := range []uint64{9, 4, 7} {
		f.mint(t, id, AccountFromOwner(f.alice))
	}

	first, err := f.ledger.MarshalSnapshot()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := f.ledger.MarshalSnapshot()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatal("snapshot serialization must be deterministic")
	}

	s := f.ledger.Snapshot()
	for i := 1; i < len(s.Tokens); i++ {
		if s.Tokens[i-1].ID.Cmp(s.Tokens[i].ID) >= 0 {
			t.Fatalf("tokens not ascending: %s before %s", s.Tokens[i-1].ID, s.Tokens[i].ID)
		}
	}
}

func TestRestoreRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"bad request hash", `{"name":"c","symbol":"X","royalty_recipient":{"owner":""},"authority":"4","seq":1,"tokens":[],"window":[{"hash":"zz","created_at":1,"index":0}]}`},
		{"duplicate token", `{"name":"c","symbol":"X","royalty_recipient":{"owner":""},"authority":"4","seq":2,"tokens":[{"id":"1","name":"a","image":null,"owner":{"owner":"4"}},{"id":"1","name":"b","image":null,"owner":{"owner":"4"}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := RestoreSnapshot([]byte(tc.data)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
