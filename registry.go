package icrc7

// Token registry: the authoritative id → owner mapping. All mutation goes
// through addToken (mint) and setOwner (transfer); neither is exported.

func (l *Ledger) addToken(t Token) {
	t.Owner = t.Owner.Canonical()
	l.tokens[t.ID] = &t
}

// setOwner reassigns ownership. Invoked exclusively by Transfer after
// authorization succeeds.
func (l *Ledger) setOwner(id TokenID, owner Account) {
	if t, ok := l.tokens[id]; ok {
		t.Owner = owner.Canonical()
	}
}

// OwnerOf returns the current owner of a token, if it exists.
func (l *Ledger) OwnerOf(id TokenID) (Account, bool) {
	t, ok := l.tokens[id]
	if !ok {
		return Account{}, false
	}
	return t.Owner, true
}

// BalanceOf counts tokens owned by the account (canonical equality,
// subaccount included).
func (l *Ledger) BalanceOf(account Account) uint64 {
	var n uint64
	for _, t := range l.tokens {
		if t.Owner.Equal(account) {
			n++
		}
	}
	return n
}

// TokensOf lists the account's token ids in ascending order.
func (l *Ledger) TokensOf(account Account) []TokenID {
	var ids []TokenID
	for _, t := range l.tokens {
		if t.Owner.Equal(account) {
			ids = append(ids, t.ID)
		}
	}
	sortTokenIDs(ids)
	return ids
}

// TotalSupply is the number of minted tokens. Derived, never stored.
func (l *Ledger) TotalSupply() uint64 {
	return uint64(len(l.tokens))
}
