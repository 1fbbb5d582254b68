package icrc7

// Collection-level and per-token read paths. Queries never mutate state and
// never fail; unknown token ids report absence through the bool result.

// Name returns the collection name.
func (l *Ledger) Name() string { return l.name }

// Symbol returns the collection symbol, uppercased at initialization.
func (l *Ledger) Symbol() string { return l.symbol }

// Description returns the collection description, empty if unset.
func (l *Ledger) Description() string { return l.description }

// Image returns the collection image bytes, nil if unset.
func (l *Ledger) Image() []byte { return l.image }

// Royalties returns the royalty rate in basis points. Informational only;
// the ledger executes no payments.
func (l *Ledger) Royalties() uint16 { return l.royalties }

// RoyaltyRecipient returns the account royalties are owed to.
func (l *Ledger) RoyaltyRecipient() Account { return l.royaltyRecipient }

// SupplyCap returns the immutable supply ceiling, 0 if uncapped.
func (l *Ledger) SupplyCap() uint64 { return l.supplyCap }

// Metadata returns the per-token metadata view, if the token exists.
func (l *Ledger) Metadata(id TokenID) (TokenMetadata, bool) {
	t, ok := l.tokens[id]
	if !ok {
		return TokenMetadata{}, false
	}
	return TokenMetadata{ID: t.ID, Name: t.Name, Image: t.Image}, true
}

// CollectionMetadata returns the collection view. A non-empty include list limits
// which fields are populated; excluded fields are left at their zero value.
// An empty list returns everything.
func (l *Ledger) CollectionMetadata(include []string) CollectionMetadata {
	incl := make(map[string]bool, len(include))
	for _, f := range include {
		incl[f] = true
	}
	return CollectionMetadata{
		Name:             maybeField("icrc7_name", incl, func() string { return l.name }),
		Symbol:           maybeField("icrc7_symbol", incl, func() string { return l.symbol }),
		Royalties:        maybeField("icrc7_royalties", incl, func() uint16 { return l.royalties }),
		RoyaltyRecipient: maybeField("icrc7_royalty_recipient", incl, func() Account { return l.royaltyRecipient }),
		Description:      maybeField("icrc7_description", incl, func() string { return l.description }),
		Image:            maybeField("icrc7_image", incl, func() []byte { return l.image }),
		TotalSupply:      maybeField("icrc7_total_supply", incl, l.TotalSupply),
		SupplyCap:        maybeField("icrc7_supply_cap", incl, func() uint64 { return l.supplyCap }),
	}
}

// maybeField lazily computes a field when the include set is empty or names
// it, and returns the zero value otherwise.
func maybeField[T any](field string, incl map[string]bool, f func() T) T {
	if len(incl) == 0 || incl[field] {
		return f()
	}
	var zero T
	return zero
}

// SupportedStandards declares the protocol standards this ledger conforms to.
func (l *Ledger) SupportedStandards() []Standard {
	return []Standard{{
		Name: "ICRC-7",
		URL:  "https://github.com/dfinity/ICRC/ICRCs/ICRC-7",
	}}
}
