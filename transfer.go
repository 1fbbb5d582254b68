package icrc7

import "github.com/holykol/icrc7/principal"

// TransferArgs are the caller-supplied fields of a transfer request. A nil
// From means the caller's own default account. A nil IsAtomic means atomic.
type TransferArgs struct {
	From          *Account   `json:"from,omitempty"`
	To            Account    `json:"to"`
	TokenIDs      TokenIDSet `json:"token_ids"`
	Memo          []byte     `json:"memo,omitempty"`
	CreatedAtTime uint64     `json:"created_at_time,omitempty"`
	IsAtomic      *bool      `json:"is_atomic,omitempty"`
}

func (a TransferArgs) atomic() bool {
	return a.IsAtomic == nil || *a.IsAtomic
}

// Transfer moves the requested tokens from the source account to args.To and
// returns the assigned ledger index.
//
// The caller must either own the source account or hold an unexpired
// approval covering each token. In atomic mode (the default) the entire
// batch is validated before any mutation and a single failing id aborts the
// whole request. In non-atomic mode ids are applied independently: the call
// succeeds if at least one id transferred, and ids that failed validation
// are skipped with their prior ownership intact.
//
// A request that declares created_at_time is validated against the permitted
// drift window and deduplicated: resubmitting an identical request within
// the retention window yields Duplicate carrying the original's ledger
// index, and the ownership change is applied only once.
func (l *Ledger) Transfer(caller principal.Principal, args TransferArgs) (uint64, error) {
	now := l.clock()
	l.gc(now)

	if len(args.TokenIDs) == 0 {
		return 0, errTransferGeneric(CodeEmptyRequest, "token_ids must not be empty")
	}
	if terr := l.validateTimestamp(args.CreatedAtTime, now); terr != nil {
		return 0, terr
	}

	from := AccountFromOwner(caller)
	if args.From != nil {
		from = args.From.Canonical()
	}
	to := args.To.Canonical()
	if from.Equal(to) {
		return 0, errTransferGeneric(CodeSelfTransfer, "cannot transfer to self")
	}

	var hash requestHash
	if args.CreatedAtTime != 0 {
		var err error
		hash, err = transferRequestHash(caller, from, to, args.TokenIDs, args.Memo, args.CreatedAtTime)
		if err != nil {
			return 0, errTransferGeneric(CodeInternal, err.Error())
		}
		if prior, ok := l.findDuplicate(hash); ok {
			return 0, errTransferDuplicate(prior)
		}
		if len(l.window) >= maxWindowEntries {
			return 0, errTransferUnavailable()
		}
	}

	// Validate the whole batch before touching state, so an atomic failure
	// leaves no partial ownership change to roll back.
	var authorized, unauthorized []TokenID
	for _, id := range args.TokenIDs.Sorted() {
		t, ok := l.tokens[id]
		// A missing token and a foreign token report identically, to avoid
		// leaking which ids exist.
		if !ok || !t.Owner.Equal(from) {
			unauthorized = append(unauthorized, id)
			continue
		}
		if caller != from.Owner && !l.isApproved(from, caller, id, now) {
			unauthorized = append(unauthorized, id)
			continue
		}
		authorized = append(authorized, id)
	}

	if args.atomic() && len(unauthorized) > 0 {
		return 0, errTransferUnauthorized(unauthorized)
	}
	if len(authorized) == 0 {
		return 0, errTransferUnauthorized(unauthorized)
	}

	for _, id := range authorized {
		l.setOwner(id, to)
		l.revokeTokenApprovals(from.Owner, id)
	}

	index := l.nextIndex()
	if args.CreatedAtTime != 0 {
		l.recordTransfer(hash, args.CreatedAtTime, index)
	}
	return index, nil
}
