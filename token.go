package icrc7

import (
	"encoding/json"
	"sort"

	"github.com/holiman/uint256"
)

// TokenID is an unsigned 256-bit token identifier. The zero value is id 0.
//
// It is comparable (usable as a map key) and marshals as a decimal string.
type TokenID struct {
	n uint256.Int
}

// NewTokenID returns the TokenID for a small integer.
func NewTokenID(v uint64) TokenID {
	var id TokenID
	id.n.SetUint64(v)
	return id
}

// ParseTokenID parses a decimal token id.
func ParseTokenID(s string) (TokenID, error) {
	var id TokenID
	if err := id.n.SetFromDecimal(s); err != nil {
		return TokenID{}, err
	}
	return id, nil
}

// Cmp returns -1, 0 or 1 comparing id to other numerically.
func (id TokenID) Cmp(other TokenID) int {
	return id.n.Cmp(&other.n)
}

func (id TokenID) String() string {
	return id.n.Dec()
}

func (id TokenID) MarshalText() ([]byte, error) {
	return []byte(id.n.Dec()), nil
}

func (id *TokenID) UnmarshalText(b []byte) error {
	return id.n.SetFromDecimal(string(b))
}

// TokenIDSet is an unordered set of token ids.
//
// JSON note: marshals as an ascending array of decimal ids, so canonical
// request hashes do not depend on map iteration order.
type TokenIDSet map[TokenID]struct{}

// NewTokenIDSet builds a set from ids.
func NewTokenIDSet(ids ...TokenID) TokenIDSet {
	s := make(TokenIDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s TokenIDSet) Contains(id TokenID) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending numeric order.
func (s TokenIDSet) Sorted() []TokenID {
	ids := make([]TokenID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sortTokenIDs(ids)
	return ids
}

func (s TokenIDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *TokenIDSet) UnmarshalJSON(b []byte) error {
	var ids []TokenID
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewTokenIDSet(ids...)
	return nil
}

func sortTokenIDs(ids []TokenID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })
}

// Token is a minted non-fungible token. Identity (ID, Name, Image) never
// changes after mint; only Owner does, and only through Transfer.
type Token struct {
	ID    TokenID `json:"id"`
	Name  string  `json:"name"`
	Image []byte  `json:"image"`
	Owner Account `json:"owner"`
}

// TokenMetadata is the per-token view returned by metadata queries.
type TokenMetadata struct {
	ID    TokenID `json:"icrc7_id"`
	Name  string  `json:"icrc7_name"`
	Image []byte  `json:"icrc7_image"`
}

// CollectionMetadata is the collection-level view. TotalSupply is derived
// from the token registry, never stored.
type CollectionMetadata struct {
	Name             string  `json:"icrc7_name"`
	Symbol           string  `json:"icrc7_symbol"`
	Royalties        uint16  `json:"icrc7_royalties"`
	RoyaltyRecipient Account `json:"icrc7_royalty_recipient"`
	Description      string  `json:"icrc7_description,omitempty"`
	Image            []byte  `json:"icrc7_image,omitempty"`
	TotalSupply      uint64  `json:"icrc7_total_supply"`
	SupplyCap        uint64  `json:"icrc7_supply_cap,omitempty"`
}

// Standard names a token standard this ledger conforms to.
type Standard struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
