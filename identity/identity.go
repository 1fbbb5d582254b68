// Package identity manages local Ed25519 identities for ledger callers.
//
// An identity is a named Ed25519 seed on the local filesystem; its principal
// is self-authenticating, derived from the public key. This is a local-first
// convenience for operators and the CLI, not a custody system.
package identity

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/holykol/icrc7/principal"
)

// Store keeps identity seeds under a single directory, one hex-encoded seed
// file per name.
type Store struct {
	Directory string
}

// Entry describes a stored identity.
type Entry struct {
	Name      string
	Principal principal.Principal
}

// DefaultDirectory is where identities live unless overridden.
func DefaultDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".icrc7", "identities"), nil
}

// NewStore opens a store rooted at directory, falling back to the default
// location when empty.
func NewStore(directory string) (*Store, error) {
	if directory == "" {
		var err error
		directory, err = DefaultDirectory()
		if err != nil {
			return nil, err
		}
	}
	return &Store{Directory: directory}, nil
}

// CheckName restricts identity names to a filesystem-safe alphabet.
func CheckName(name string) error {
	if name == "" {
		return errors.New("identity name cannot be empty")
	}
	for _, char := range name {
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_' {
			continue
		}
		return fmt.Errorf("invalid character %q in identity name", char)
	}
	return nil
}

// ParseSeedHex decodes a hex-encoded Ed25519 seed, tolerating a 0x prefix.
func ParseSeedHex(seedHex string) ([]byte, error) {
	seedHex = strings.TrimSpace(seedHex)
	seedHex = strings.TrimPrefix(seedHex, "0x")
	data, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, err
	}
	if len(data) != ed25519.SeedSize {
		return nil, fmt.Errorf("expected seed length of %d bytes, got %d", ed25519.SeedSize, len(data))
	}
	return data, nil
}

func (s *Store) pathFor(name string) string {
	return filepath.Join(s.Directory, name+".key")
}

// Create stores seed under name and returns the derived principal and the
// seed file path. Without overwrite an existing identity is preserved.
func (s *Store) Create(name string, seed []byte, overwrite bool) (principal.Principal, string, error) {
	if err := CheckName(name); err != nil {
		return "", "", err
	}
	if len(seed) != ed25519.SeedSize {
		return "", "", fmt.Errorf("expected seed length of %d bytes", ed25519.SeedSize)
	}
	if err := os.MkdirAll(s.Directory, 0o700); err != nil {
		return "", "", err
	}

	path := s.pathFor(name)
	flags := os.O_WRONLY | os.O_CREATE
	if overwrite {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}
	file, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return "", "", err
	}
	defer file.Close()
	if _, err := file.WriteString(hex.EncodeToString(seed) + "\n"); err != nil {
		return "", "", err
	}
	if err := file.Close(); err != nil {
		return "", "", err
	}

	key := ed25519.NewKeyFromSeed(seed)
	return principal.SelfAuthenticating(key.Public().(ed25519.PublicKey)), path, nil
}

// Load returns the private key of a stored identity.
func (s *Store) Load(name string) (ed25519.PrivateKey, error) {
	if err := CheckName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.pathFor(name))
	if err != nil {
		return nil, err
	}
	seed, err := ParseSeedHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("identity %s: %w", name, err)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// Principal resolves a stored identity to its principal.
func (s *Store) Principal(name string) (principal.Principal, error) {
	key, err := s.Load(name)
	if err != nil {
		return "", err
	}
	return principal.SelfAuthenticating(key.Public().(ed25519.PublicKey)), nil
}

// List returns the stored identities sorted by name.
func (s *Store) List() ([]Entry, error) {
	entries, err := os.ReadDir(s.Directory)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".key") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".key"))
	}
	sort.Strings(names)

	var result []Entry
	for _, name := range names {
		p, err := s.Principal(name)
		if err != nil {
			return nil, err
		}
		result = append(result, Entry{Name: name, Principal: p})
	}
	return result, nil
}
