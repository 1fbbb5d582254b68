package icrc7

import "github.com/holykol/icrc7/principal"

// Approval delegates transfer rights from an owning principal to a spender.
// Scope is bounded three ways: by token ids (nil = all tokens), by source
// subaccount (nil = all subaccounts) and by expiry (0 = never expires).
type Approval struct {
	From           principal.Principal `json:"from"`
	FromSubaccount *Subaccount         `json:"from_subaccount,omitempty"`
	To             principal.Principal `json:"to"`
	TokenIDs       TokenIDSet          `json:"token_ids,omitempty"`
	ExpiresAt      uint64              `json:"expires_at,omitempty"`
	CreatedAt      uint64              `json:"created_at,omitempty"`
	Memo           []byte              `json:"memo,omitempty"`
}

// expired reports whether the approval no longer authorizes anything.
// The boundary is inclusive: an approval expiring at T is invalid at T.
func (a *Approval) expired(now uint64) bool {
	return a.ExpiresAt != 0 && now >= a.ExpiresAt
}

func (a *Approval) covers(id TokenID) bool {
	return a.TokenIDs == nil || a.TokenIDs.Contains(id)
}

// overlaps reports whether two approvals from the same owner to the same
// spender cover intersecting scope, in which case the later one supersedes
// the earlier.
func (a *Approval) overlaps(b *Approval) bool {
	if a.To != b.To {
		return false
	}
	if a.FromSubaccount != nil && b.FromSubaccount != nil && *a.FromSubaccount != *b.FromSubaccount {
		return false
	}
	if a.TokenIDs == nil || b.TokenIDs == nil {
		return true
	}
	for id := range a.TokenIDs {
		if b.TokenIDs.Contains(id) {
			return true
		}
	}
	return false
}

// ApproveArgs are the caller-supplied fields of an approve request.
type ApproveArgs struct {
	To             principal.Principal `json:"to"`
	FromSubaccount *Subaccount         `json:"from_subaccount,omitempty"`
	TokenIDs       TokenIDSet          `json:"token_ids,omitempty"`
	ExpiresAt      uint64              `json:"expires_at,omitempty"`
	CreatedAt      uint64              `json:"created_at,omitempty"`
	Memo           []byte              `json:"memo,omitempty"`
}

// Approve registers a delegation from the caller to args.To and returns the
// assigned ledger index. Scope must reference tokens the caller currently
// owns; ownership is re-checked at transfer time, not here.
func (l *Ledger) Approve(caller principal.Principal, args ApproveArgs) (uint64, error) {
	now := l.clock()
	l.gc(now)

	if args.TokenIDs != nil {
		var unauthorized []TokenID
		for id := range args.TokenIDs {
			t, ok := l.tokens[id]
			if !ok || t.Owner.Owner != caller {
				unauthorized = append(unauthorized, id)
			}
		}
		if len(unauthorized) > 0 {
			return 0, errApprovalUnauthorized(unauthorized)
		}
	}

	if args.CreatedAt != 0 && now > args.CreatedAt+PermittedDrift {
		return 0, errApprovalTooOld()
	}

	if len(l.approvals) >= maxLiveApprovals {
		return 0, errApprovalUnavailable()
	}

	createdAt := args.CreatedAt
	if createdAt == 0 {
		createdAt = now
	}
	approval := &Approval{
		From:           caller,
		FromSubaccount: args.FromSubaccount,
		To:             args.To,
		TokenIDs:       args.TokenIDs,
		ExpiresAt:      args.ExpiresAt,
		CreatedAt:      createdAt,
		Memo:           args.Memo,
	}

	// A later approval supersedes earlier ones with overlapping scope.
	for _, idx := range l.approvalsByOwner[caller] {
		prior, ok := l.approvals[idx]
		if ok && approval.overlaps(prior) {
			delete(l.approvals, idx)
		}
	}
	l.compactOwnerApprovals(caller)

	index := l.nextIndex()
	l.approvals[index] = approval
	l.approvalsByOwner[caller] = append(l.approvalsByOwner[caller], index)
	return index, nil
}

// isApproved reports whether an unexpired approval from the owner of `from`
// to `spender` covers token `id` at time `now`.
func (l *Ledger) isApproved(from Account, spender principal.Principal, id TokenID, now uint64) bool {
	for _, idx := range l.approvalsByOwner[from.Owner] {
		a, ok := l.approvals[idx]
		if !ok {
			continue
		}
		if a.To != spender || !a.covers(id) || a.expired(now) {
			continue
		}
		if a.FromSubaccount != nil && *a.FromSubaccount != from.effectiveSubaccount() {
			continue
		}
		return true
	}
	return false
}

func (l *Ledger) compactOwnerApprovals(owner principal.Principal) {
	idxs := l.approvalsByOwner[owner]
	kept := idxs[:0]
	for _, idx := range idxs {
		if _, ok := l.approvals[idx]; ok {
			kept = append(kept, idx)
		}
	}
	if len(kept) == 0 {
		delete(l.approvalsByOwner, owner)
		return
	}
	l.approvalsByOwner[owner] = kept
}

// revokeTokenApprovals removes token `id` from every explicit approval scope
// of `owner`, dropping approvals whose scope becomes empty. Account-wide
// (nil scope) approvals are untouched: they follow the owner, not the token.
func (l *Ledger) revokeTokenApprovals(owner principal.Principal, id TokenID) {
	for _, idx := range l.approvalsByOwner[owner] {
		a, ok := l.approvals[idx]
		if !ok || a.TokenIDs == nil || !a.TokenIDs.Contains(id) {
			continue
		}
		delete(a.TokenIDs, id)
		if len(a.TokenIDs) == 0 {
			delete(l.approvals, idx)
		}
	}
	l.compactOwnerApprovals(owner)
}
