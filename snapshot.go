package icrc7

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/holykol/icrc7/principal"
)

// Snapshot is the full serializable ledger state. The host persists it
// between invocations and across upgrades; the ledger itself never touches
// storage.
type Snapshot struct {
	Name             string              `json:"name"`
	Symbol           string              `json:"symbol"`
	Description      string              `json:"description,omitempty"`
	Royalties        uint16              `json:"royalties"`
	RoyaltyRecipient Account             `json:"royalty_recipient"`
	Image            []byte              `json:"image,omitempty"`
	SupplyCap        uint64              `json:"supply_cap,omitempty"`
	Authority        principal.Principal `json:"authority"`

	Seq       uint64                `json:"seq"`
	Tokens    []Token               `json:"tokens"`
	Approvals []SnapshotApproval    `json:"approvals,omitempty"`
	Window    []SnapshotWindowEntry `json:"window,omitempty"`
}

// SnapshotApproval is an approval together with its ledger index.
type SnapshotApproval struct {
	Index uint64 `json:"index"`
	Approval
}

// SnapshotWindowEntry is a replay-window record. Hash is hex.
type SnapshotWindowEntry struct {
	Hash      string `json:"hash"`
	CreatedAt uint64 `json:"created_at"`
	Index     uint64 `json:"index"`
}

// Snapshot captures the current state in a deterministic order.
func (l *Ledger) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:             l.name,
		Symbol:           l.symbol,
		Description:      l.description,
		Royalties:        l.royalties,
		RoyaltyRecipient: l.royaltyRecipient,
		Image:            l.image,
		SupplyCap:        l.supplyCap,
		Authority:        l.authority,
		Seq:              l.seq,
	}

	s.Tokens = make([]Token, 0, len(l.tokens))
	for _, t := range l.tokens {
		s.Tokens = append(s.Tokens, *t)
	}
	sort.Slice(s.Tokens, func(i, j int) bool { return s.Tokens[i].ID.Cmp(s.Tokens[j].ID) < 0 })

	for idx, a := range l.approvals {
		s.Approvals = append(s.Approvals, SnapshotApproval{Index: idx, Approval: *a})
	}
	sort.Slice(s.Approvals, func(i, j int) bool { return s.Approvals[i].Index < s.Approvals[j].Index })

	for h, e := range l.window {
		s.Window = append(s.Window, SnapshotWindowEntry{
			Hash:      hex.EncodeToString(h[:]),
			CreatedAt: e.CreatedAt,
			Index:     e.Index,
		})
	}
	sort.Slice(s.Window, func(i, j int) bool { return s.Window[i].Index < s.Window[j].Index })

	return s
}

// FromSnapshot rebuilds a ledger from captured state.
func FromSnapshot(s *Snapshot) (*Ledger, error) {
	l := &Ledger{
		name:             s.Name,
		symbol:           s.Symbol,
		description:      s.Description,
		royalties:        s.Royalties,
		royaltyRecipient: s.RoyaltyRecipient.Canonical(),
		image:            s.Image,
		supplyCap:        s.SupplyCap,
		authority:        s.Authority,
		seq:              s.Seq,
		tokens:           make(map[TokenID]*Token, len(s.Tokens)),
		approvals:        make(map[uint64]*Approval, len(s.Approvals)),
		approvalsByOwner: make(map[principal.Principal][]uint64),
		window:           make(map[requestHash]windowEntry, len(s.Window)),
		clock:            nanotime,
	}

	for _, t := range s.Tokens {
		if _, dup := l.tokens[t.ID]; dup {
			return nil, fmt.Errorf("icrc7: snapshot has duplicate token id %s", t.ID)
		}
		l.addToken(t)
	}
	if l.supplyCap != 0 && uint64(len(l.tokens)) > l.supplyCap {
		return nil, fmt.Errorf("icrc7: snapshot exceeds supply cap %d", l.supplyCap)
	}

	for _, sa := range s.Approvals {
		if sa.Index >= l.seq {
			return nil, fmt.Errorf("icrc7: snapshot approval index %d beyond sequence %d", sa.Index, l.seq)
		}
		a := sa.Approval
		l.approvals[sa.Index] = &a
		l.approvalsByOwner[a.From] = append(l.approvalsByOwner[a.From], sa.Index)
	}
	for owner := range l.approvalsByOwner {
		idxs := l.approvalsByOwner[owner]
		sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })
	}

	for _, w := range s.Window {
		raw, err := hex.DecodeString(w.Hash)
		if err != nil || len(raw) != len(requestHash{}) {
			return nil, fmt.Errorf("icrc7: snapshot has malformed request hash %q", w.Hash)
		}
		var h requestHash
		copy(h[:], raw)
		l.window[h] = windowEntry{CreatedAt: w.CreatedAt, Index: w.Index}
	}

	return l, nil
}

// MarshalSnapshot serializes the current state as JSON.
func (l *Ledger) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(l.Snapshot())
}

// RestoreSnapshot rebuilds a ledger from MarshalSnapshot output.
func RestoreSnapshot(data []byte) (*Ledger, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("icrc7: decode snapshot: %w", err)
	}
	return FromSnapshot(&s)
}
