// Package principal implements the opaque caller identity used by the ledger.
//
// A principal is a short byte string. Self-authenticating principals are
// derived from an ed25519 public key, so a keyholder can prove control of the
// identity to the host; the ledger itself only ever compares principals for
// equality.
package principal

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"
)

// MaxLength bounds the raw byte form. Derived principals are 29 bytes
// (28-byte digest plus a tag); opaque principals may be shorter.
const MaxLength = 29

const selfAuthenticatingTag = 0x02

// Anonymous is the well-known principal of unauthenticated callers.
var Anonymous = Principal("\x04")

// Principal is an immutable identity. The zero value is the empty principal,
// which is valid but owns nothing and can never authenticate.
type Principal string

// FromBytes constructs a Principal from raw bytes.
func FromBytes(b []byte) (Principal, error) {
	if len(b) > MaxLength {
		return "", fmt.Errorf("principal: %d bytes exceeds maximum of %d", len(b), MaxLength)
	}
	return Principal(b), nil
}

// SelfAuthenticating derives the principal controlled by the given ed25519
// public key: sha3-224 of the key bytes, followed by a tag byte.
func SelfAuthenticating(pub ed25519.PublicKey) Principal {
	sum := sha3.Sum224(pub)
	return Principal(append(sum[:], selfAuthenticatingTag))
}

// FromText parses the base58 text form produced by Text.
func FromText(s string) (Principal, error) {
	if s == "" {
		return "", errors.New("principal: empty text form")
	}
	b, err := base58.Decode(s)
	if err != nil {
		return "", fmt.Errorf("principal: decode %q: %w", s, err)
	}
	return FromBytes(b)
}

// Text returns the base58 text form.
func (p Principal) Text() string {
	return base58.Encode([]byte(p))
}

func (p Principal) String() string { return p.Text() }

// Bytes returns a copy of the raw byte form.
func (p Principal) Bytes() []byte { return []byte(p) }

// Empty reports whether p is the zero principal.
func (p Principal) Empty() bool { return len(p) == 0 }

func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.Text()), nil
}

func (p *Principal) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = ""
		return nil
	}
	v, err := FromText(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
