package icrc7

import "github.com/holykol/icrc7/principal"

// MintArgs describe a token to create.
type MintArgs struct {
	ID    TokenID `json:"id"`
	Name  string  `json:"name"`
	Image []byte  `json:"image"`
	Owner Account `json:"owner"`
}

// MintToken creates a new token owned by args.Owner and returns the assigned
// ledger index. Only the collection authority may mint. The error channel is
// plain text by protocol; errors are *MintError underneath for callers that
// want the category.
func (l *Ledger) MintToken(caller principal.Principal, args MintArgs) (uint64, error) {
	if l.authority.Empty() {
		return 0, errMint(MintUnauthorized, "can't mint because authority is not set")
	}
	if caller != l.authority {
		return 0, errMint(MintUnauthorized, "caller is not authority")
	}
	if l.supplyCap != 0 && uint64(len(l.tokens)) >= l.supplyCap {
		return 0, errMint(MintSupplyCapExceeded, "supply cap reached")
	}
	if _, exists := l.tokens[args.ID]; exists {
		return 0, errMint(MintDuplicateID, "token with this ID already exists")
	}

	l.addToken(Token{
		ID:    args.ID,
		Name:  args.Name,
		Image: args.Image,
		Owner: args.Owner,
	})
	return l.nextIndex(), nil
}
