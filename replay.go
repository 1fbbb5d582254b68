package icrc7

import (
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"golang.org/x/crypto/sha3"

	"github.com/holykol/icrc7/principal"
)

// Replay guard: a bounded window of recent transfers keyed by a canonical
// hash of (caller, request fields, timestamp). A request without a declared
// timestamp skips both the time-window check and deduplication; the caller
// accepts unlimited-replay risk in exchange for simplicity.

type requestHash [32]byte

func (h requestHash) String() string { return fmt.Sprintf("%x", h[:]) }

type windowEntry struct {
	CreatedAt uint64
	Index     uint64
}

// transferRequestHash computes the dedup key of a transfer request. The JSON
// form is canonicalized (RFC 8785) before hashing so field order and number
// formatting cannot produce distinct hashes for identical requests.
func transferRequestHash(caller principal.Principal, from, to Account, ids TokenIDSet, memo []byte, createdAt uint64) (requestHash, error) {
	payload := struct {
		Caller    principal.Principal `json:"caller"`
		From      Account             `json:"from"`
		To        Account             `json:"to"`
		TokenIDs  TokenIDSet          `json:"token_ids"`
		Memo      []byte              `json:"memo,omitempty"`
		CreatedAt uint64              `json:"created_at_time"`
	}{caller, from.Canonical(), to.Canonical(), ids, memo, createdAt}

	raw, err := json.Marshal(payload)
	if err != nil {
		return requestHash{}, fmt.Errorf("icrc7: marshal transfer request: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return requestHash{}, fmt.Errorf("icrc7: canonicalize transfer request: %w", err)
	}
	return sha3.Sum256(canonical), nil
}

// validateTimestamp enforces the permitted drift window. A zero createdAt
// means the request declared no timestamp and is exempt.
func (l *Ledger) validateTimestamp(createdAt, now uint64) *TransferError {
	if createdAt == 0 {
		return nil
	}
	if now > createdAt+PermittedDrift {
		return errTransferTooOld()
	}
	if createdAt > now+PermittedDrift {
		return errTransferCreatedInFuture(now)
	}
	return nil
}

// findDuplicate looks up a previously registered request within the retained
// window and returns its ledger index.
func (l *Ledger) findDuplicate(h requestHash) (uint64, bool) {
	e, ok := l.window[h]
	return e.Index, ok
}

// recordTransfer registers a completed transfer against its request hash so
// later identical submissions replay its index.
func (l *Ledger) recordTransfer(h requestHash, createdAt, index uint64) {
	l.window[h] = windowEntry{CreatedAt: createdAt, Index: index}
}
