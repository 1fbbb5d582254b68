package icrc7

import (
	"encoding/hex"
	"fmt"

	"github.com/holykol/icrc7/principal"
)

// SubaccountSize is the fixed length of a subaccount, in bytes.
const SubaccountSize = 32

// Subaccount distinguishes multiple accounts under one principal.
//
// JSON note: encoded as lowercase hex.
type Subaccount [SubaccountSize]byte

// DefaultSubaccount is the all-zero subaccount every principal implicitly owns.
var DefaultSubaccount Subaccount

// SubaccountFromBytes copies b into a Subaccount. b must be exactly
// SubaccountSize bytes.
func SubaccountFromBytes(b []byte) (Subaccount, error) {
	var sub Subaccount
	if len(b) != SubaccountSize {
		return sub, fmt.Errorf("icrc7: subaccount must be %d bytes, got %d", SubaccountSize, len(b))
	}
	copy(sub[:], b)
	return sub, nil
}

func (s Subaccount) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s[:])), nil
}

func (s *Subaccount) UnmarshalText(b []byte) error {
	raw, err := hex.DecodeString(string(b))
	if err != nil {
		return fmt.Errorf("icrc7: decode subaccount: %w", err)
	}
	sub, err := SubaccountFromBytes(raw)
	if err != nil {
		return err
	}
	*s = sub
	return nil
}

// Account is the unit of token ownership: a principal plus an optional
// subaccount. An absent subaccount is equivalent to the all-zero default;
// Canonical fixes that rule in one place and all stored accounts are kept in
// canonical form.
type Account struct {
	Owner      principal.Principal `json:"owner"`
	Subaccount *Subaccount         `json:"subaccount,omitempty"`
}

// AccountFromOwner returns the canonical default account of a principal.
func AccountFromOwner(owner principal.Principal) Account {
	return Account{Owner: owner}.Canonical()
}

// Canonical returns the account with an explicit subaccount, filling the
// default for an absent one.
func (a Account) Canonical() Account {
	if a.Subaccount != nil {
		return a
	}
	sub := DefaultSubaccount
	return Account{Owner: a.Owner, Subaccount: &sub}
}

// Equal reports whether two accounts denote the same holder, comparing
// canonical forms.
func (a Account) Equal(b Account) bool {
	if a.Owner != b.Owner {
		return false
	}
	return a.effectiveSubaccount() == b.effectiveSubaccount()
}

func (a Account) effectiveSubaccount() Subaccount {
	if a.Subaccount == nil {
		return DefaultSubaccount
	}
	return *a.Subaccount
}

func (a Account) String() string {
	sub := a.effectiveSubaccount()
	if sub == DefaultSubaccount {
		return a.Owner.Text()
	}
	return a.Owner.Text() + "." + hex.EncodeToString(sub[:])
}
