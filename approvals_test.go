package icrc7

import (
	"errors"
	"testing"
)

func TestApproveAllowsSpenderTransfer(t *testing.T) {
	f := newFixture(t, InitArgs{})
	id := f.mint(t, 1, AccountFromOwner(f.alice))

	index, err := f.ledger.Approve(f.alice, ApproveArgs{To: f.bob})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if index != 1 {
		t.Fatalf("index = %d, want 1", index)
	}

	from := AccountFromOwner(f.alice)
	if _, err := f.ledger.Transfer(f.bob, TransferArgs{
		From:     &from,
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(id),
	}); err != nil {
		t.Fatalf("spender transfer: %v", err)
	}
	if got := f.owner(t, id); !got.Equal(AccountFromOwner(f.carol)) {
		t.Fatalf("owner = %v, want carol", got)
	}
}

func TestApproveScopedToTokens(t *testing.T) {
	f := newFixture(t, InitArgs{})
	covered := f.mint(t, 1, AccountFromOwner(f.alice))
	other := f.mint(t, 2, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:       f.bob,
		TokenIDs: NewTokenIDSet(covered),
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	from := AccountFromOwner(f.alice)
	if _, err := f.ledger.Transfer(f.bob, TransferArgs{
		From:     &from,
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(covered),
	}); err != nil {
		t.Fatalf("covered transfer: %v", err)
	}

	_, err := f.ledger.Transfer(f.bob, TransferArgs{
		From:     &from,
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(other),
	})
	var terr *TransferError
	if !errors.As(err, &terr) || terr.Kind != TransferUnauthorized {
		t.Fatalf("error = %v, want Unauthorized for uncovered token", err)
	}
}

func TestApproveRejectsForeignTokens(t *testing.T) {
	f := newFixture(t, InitArgs{})
	foreign := f.mint(t, 1, AccountFromOwner(f.bob))

	_, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:       f.carol,
		TokenIDs: NewTokenIDSet(foreign),
	})
	var aerr *ApprovalError
	if !errors.As(err, &aerr) || aerr.Kind != ApprovalUnauthorized {
		t.Fatalf("error = %v, want Unauthorized", err)
	}
	if len(aerr.TokenIDs) != 1 || aerr.TokenIDs[0] != foreign {
		t.Fatalf("failing ids = %v, want [%s]", aerr.TokenIDs, foreign)
	}
}

func TestApproveTooOld(t *testing.T) {
	f := newFixture(t, InitArgs{})
	f.mint(t, 1, AccountFromOwner(f.alice))

	_, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:        f.bob,
		CreatedAt: testNow - PermittedDrift - 1,
	})
	var aerr *ApprovalError
	if !errors.As(err, &aerr) || aerr.Kind != ApprovalTooOld {
		t.Fatalf("error = %v, want TooOld", err)
	}
}

// An approval expiring at T stops authorizing exactly at T, not after it.
func TestApprovalExpiryBoundary(t *testing.T) {
	f := newFixture(t, InitArgs{})
	id := f.mint(t, 1, AccountFromOwner(f.alice))
	expiry := testNow + 10*minute

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{To: f.bob, ExpiresAt: expiry}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	from := AccountFromOwner(f.alice)
	f.now = expiry - 1
	if !f.ledger.isApproved(from, f.bob, id, f.now) {
		t.Fatal("approval must hold just before expiry")
	}

	f.now = expiry
	_, err := f.ledger.Transfer(f.bob, TransferArgs{
		From:     &from,
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(id),
	})
	var terr *TransferError
	if !errors.As(err, &terr) || terr.Kind != TransferUnauthorized {
		t.Fatalf("error = %v, want Unauthorized at expiry instant", err)
	}
	if got := f.owner(t, id); !got.Equal(from) {
		t.Fatal("expired approval must not move ownership")
	}
}

func TestApprovalSubaccountScope(t *testing.T) {
	f := newFixture(t, InitArgs{})
	scoped := Account{Owner: f.alice, Subaccount: subaccount(5)}
	inScoped := f.mint(t, 1, scoped)
	inDefault := f.mint(t, 2, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:             f.bob,
		FromSubaccount: subaccount(5),
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := f.ledger.Transfer(f.bob, TransferArgs{
		From:     &scoped,
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(inScoped),
	}); err != nil {
		t.Fatalf("transfer from scoped subaccount: %v", err)
	}

	def := AccountFromOwner(f.alice)
	_, err := f.ledger.Transfer(f.bob, TransferArgs{
		From:     &def,
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(inDefault),
	})
	var terr *TransferError
	if !errors.As(err, &terr) || terr.Kind != TransferUnauthorized {
		t.Fatalf("error = %v, want Unauthorized outside scoped subaccount", err)
	}
}

func TestApprovalSupersedesOverlapping(t *testing.T) {
	f := newFixture(t, InitArgs{})
	a := f.mint(t, 1, AccountFromOwner(f.alice))
	b := f.mint(t, 2, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{To: f.bob}); err != nil {
		t.Fatalf("first approve: %v", err)
	}
	// Narrower approval to the same spender replaces the account-wide one.
	if _, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:       f.bob,
		TokenIDs: NewTokenIDSet(a),
	}); err != nil {
		t.Fatalf("second approve: %v", err)
	}

	if len(f.ledger.approvals) != 1 {
		t.Fatalf("live approvals = %d, want 1", len(f.ledger.approvals))
	}
	from := AccountFromOwner(f.alice)
	if !f.ledger.isApproved(from, f.bob, a, f.now) {
		t.Fatal("superseding approval must cover its scope")
	}
	if f.ledger.isApproved(from, f.bob, b, f.now) {
		t.Fatal("superseded account-wide approval must be gone")
	}
}

func TestApprovalsToDistinctSpendersCoexist(t *testing.T) {
	f := newFixture(t, InitArgs{})
	id := f.mint(t, 1, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{To: f.bob}); err != nil {
		t.Fatalf("approve bob: %v", err)
	}
	if _, err := f.ledger.Approve(f.alice, ApproveArgs{To: f.carol}); err != nil {
		t.Fatalf("approve carol: %v", err)
	}

	from := AccountFromOwner(f.alice)
	if !f.ledger.isApproved(from, f.bob, id, f.now) || !f.ledger.isApproved(from, f.carol, id, f.now) {
		t.Fatal("approvals to distinct spenders must both hold")
	}
}

func TestTransferRevokesTokenScopedApproval(t *testing.T) {
	f := newFixture(t, InitArgs{})
	moved := f.mint(t, 1, AccountFromOwner(f.alice))
	kept := f.mint(t, 2, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:       f.bob,
		TokenIDs: NewTokenIDSet(moved, kept),
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	if _, err := f.ledger.Transfer(f.alice, TransferArgs{
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(moved),
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	from := AccountFromOwner(f.alice)
	if f.ledger.isApproved(from, f.bob, moved, f.now) {
		t.Fatal("approval for the transferred token must be revoked")
	}
	if !f.ledger.isApproved(from, f.bob, kept, f.now) {
		t.Fatal("approval for the untransferred token must survive")
	}
}

func TestTransferDropsEmptiedApproval(t *testing.T) {
	f := newFixture(t, InitArgs{})
	id := f.mint(t, 1, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:       f.bob,
		TokenIDs: NewTokenIDSet(id),
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := f.ledger.Transfer(f.alice, TransferArgs{
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(id),
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(f.ledger.approvals) != 0 {
		t.Fatalf("live approvals = %d, want 0 after scope emptied", len(f.ledger.approvals))
	}
}

func TestExpiredApprovalsGarbageCollected(t *testing.T) {
	f := newFixture(t, InitArgs{})
	id := f.mint(t, 1, AccountFromOwner(f.alice))

	if _, err := f.ledger.Approve(f.alice, ApproveArgs{
		To:        f.bob,
		ExpiresAt: testNow + minute,
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	f.now = testNow + 2*minute
	// Any mutating call runs gc.
	if _, err := f.ledger.Transfer(f.alice, TransferArgs{
		To:       AccountFromOwner(f.carol),
		TokenIDs: NewTokenIDSet(id),
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if len(f.ledger.approvals) != 0 {
		t.Fatalf("live approvals = %d, want 0 after expiry gc", len(f.ledger.approvals))
	}
	if len(f.ledger.approvalsByOwner) != 0 {
		t.Fatalf("owner index entries = %d, want 0 after expiry gc", len(f.ledger.approvalsByOwner))
	}
}
