// Package icrc7 implements the core state machine of an ICRC-7 non-fungible
// token ledger: token ownership, delegated approvals, and the transfer, mint
// and approve pipelines with replay deduplication and time-window validation.
//
// The package holds all state in memory and performs no I/O. It expects the
// host to invoke entry points sequentially and to persist state between
// invocations (see Snapshot/RestoreSnapshot); it therefore uses no internal
// locking. No operation suspends mid-call. If a future operation ever awaits
// an external service, all preconditions checked before the suspension point
// must be re-validated after it, because other calls may interleave.
package icrc7

import (
	"errors"
	"strings"
	"time"

	"github.com/holykol/icrc7/principal"
)

// PermittedDrift is the tolerated skew between a request's declared
// timestamp and ledger time, in nanoseconds.
const PermittedDrift = uint64(2 * time.Minute)

// dedupRetention is how long transfer records are kept for duplicate
// detection. Hashes older than this are evicted and become reusable;
// replay beyond the window is accepted residual risk by protocol design.
const dedupRetention = uint64(24 * time.Hour)

// Capacity bounds. Exhaustion surfaces TemporarilyUnavailable: gc frees
// space as entries expire, so callers can retry.
const (
	maxWindowEntries = 100_000
	maxLiveApprovals = 100_000
)

// InitArgs configures a new collection.
type InitArgs struct {
	Name             string              `json:"name" yaml:"name"`
	Symbol           string              `json:"symbol" yaml:"symbol"`
	Description      string              `json:"description,omitempty" yaml:"description"`
	Royalties        uint16              `json:"royalties" yaml:"royalties"`
	RoyaltyRecipient Account             `json:"royalty_recipient" yaml:"royalty_recipient"`
	Image            []byte              `json:"image,omitempty" yaml:"image"`
	SupplyCap        uint64              `json:"supply_cap,omitempty" yaml:"supply_cap"`
	Authority        principal.Principal `json:"authority" yaml:"authority"`
}

// Ledger is the collection state container: the token and approval
// registries, the replay window, collection metadata, and the single
// monotonic ledger sequence shared by all mutating operations.
type Ledger struct {
	name             string
	symbol           string
	description      string
	royalties        uint16
	royaltyRecipient Account
	image            []byte
	supplyCap        uint64 // 0 = uncapped
	authority        principal.Principal

	// seq is the next ledger index to assign. Indexes start at 0 and are
	// strictly increasing across mints, transfers and approvals.
	seq uint64

	tokens           map[TokenID]*Token
	approvals        map[uint64]*Approval
	approvalsByOwner map[principal.Principal][]uint64
	window           map[requestHash]windowEntry

	clock func() uint64
}

// New validates args and returns an initialized empty ledger.
func New(args InitArgs) (*Ledger, error) {
	if args.Name == "" {
		return nil, errors.New("icrc7: collection name is required")
	}
	if args.Royalties > 10000 {
		return nil, errors.New("icrc7: royalties must be between 0 and 10000 basis points")
	}
	if args.Authority.Empty() {
		return nil, errors.New("icrc7: mint authority is required")
	}
	return &Ledger{
		name:             args.Name,
		symbol:           strings.ToUpper(args.Symbol),
		description:      args.Description,
		royalties:        args.Royalties,
		royaltyRecipient: args.RoyaltyRecipient.Canonical(),
		image:            args.Image,
		supplyCap:        args.SupplyCap,
		authority:        args.Authority,
		tokens:           make(map[TokenID]*Token),
		approvals:        make(map[uint64]*Approval),
		approvalsByOwner: make(map[principal.Principal][]uint64),
		window:           make(map[requestHash]windowEntry),
		clock:            nanotime,
	}, nil
}

// WithClock overrides the time source (nanoseconds). For tests.
func (l *Ledger) WithClock(clock func() uint64) *Ledger {
	l.clock = clock
	return l
}

func nanotime() uint64 {
	return uint64(time.Now().UnixNano())
}

// nextIndex assigns the ledger index for a successful mutating call.
func (l *Ledger) nextIndex() uint64 {
	i := l.seq
	l.seq++
	return i
}

// gc evicts transfer records beyond the dedup retention window and expired
// approvals. Called opportunistically at the start of mutating operations;
// no background cleanup is required.
func (l *Ledger) gc(now uint64) {
	var horizon uint64
	if now > dedupRetention {
		horizon = now - dedupRetention
	}
	for h, e := range l.window {
		if e.CreatedAt < horizon {
			delete(l.window, h)
		}
	}

	for idx, a := range l.approvals {
		if a.expired(now) {
			delete(l.approvals, idx)
		}
	}
	for owner, idxs := range l.approvalsByOwner {
		kept := idxs[:0]
		for _, idx := range idxs {
			if _, ok := l.approvals[idx]; ok {
				kept = append(kept, idx)
			}
		}
		if len(kept) == 0 {
			delete(l.approvalsByOwner, owner)
			continue
		}
		l.approvalsByOwner[owner] = kept
	}
}
