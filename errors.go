package icrc7

import "fmt"

// Error variants mirror the protocol's tagged unions, one taxonomy per
// operation family. Callers should branch on Kind via errors.As rather than
// matching error strings; Error() text is for humans and may evolve.

// TransferErrorKind enumerates the transfer error variants.
type TransferErrorKind string

const (
	TransferUnauthorized           TransferErrorKind = "Unauthorized"
	TransferTooOld                 TransferErrorKind = "TooOld"
	TransferCreatedInFuture        TransferErrorKind = "CreatedInFuture"
	TransferDuplicate              TransferErrorKind = "Duplicate"
	TransferTemporarilyUnavailable TransferErrorKind = "TemporarilyUnavailable"
	TransferGeneric                TransferErrorKind = "GenericError"
)

// Stable GenericError codes.
const (
	// CodeSelfTransfer rejects a transfer where source and destination are
	// the same account.
	CodeSelfTransfer uint64 = 2
	// CodeEmptyRequest rejects a transfer naming no token ids.
	CodeEmptyRequest uint64 = 3
	// CodeInternal is the catch-all for unexpected internal conditions.
	CodeInternal uint64 = 100
)

// TransferError is the structured failure of a transfer request. Only the
// payload fields of the active Kind are meaningful.
type TransferError struct {
	Kind        TransferErrorKind `json:"kind"`
	TokenIDs    []TokenID         `json:"token_ids,omitempty"`
	LedgerTime  uint64            `json:"ledger_time"`
	DuplicateOf uint64            `json:"duplicate_of"`
	Code        uint64            `json:"code"`
	Message     string            `json:"message,omitempty"`
}

func (e *TransferError) Error() string {
	switch e.Kind {
	case TransferUnauthorized:
		return fmt.Sprintf("transfer unauthorized for token ids %v", e.TokenIDs)
	case TransferTooOld:
		return "transfer created_at_time is too old"
	case TransferCreatedInFuture:
		return fmt.Sprintf("transfer created_at_time is in the future (ledger time %d)", e.LedgerTime)
	case TransferDuplicate:
		return fmt.Sprintf("duplicate of transfer %d", e.DuplicateOf)
	case TransferTemporarilyUnavailable:
		return "ledger temporarily unavailable, retry later"
	default:
		return fmt.Sprintf("transfer error %d: %s", e.Code, e.Message)
	}
}

func errTransferUnauthorized(ids []TokenID) *TransferError {
	sortTokenIDs(ids)
	return &TransferError{Kind: TransferUnauthorized, TokenIDs: ids}
}

func errTransferTooOld() *TransferError {
	return &TransferError{Kind: TransferTooOld}
}

func errTransferCreatedInFuture(ledgerTime uint64) *TransferError {
	return &TransferError{Kind: TransferCreatedInFuture, LedgerTime: ledgerTime}
}

func errTransferDuplicate(of uint64) *TransferError {
	return &TransferError{Kind: TransferDuplicate, DuplicateOf: of}
}

func errTransferUnavailable() *TransferError {
	return &TransferError{Kind: TransferTemporarilyUnavailable}
}

func errTransferGeneric(code uint64, message string) *TransferError {
	return &TransferError{Kind: TransferGeneric, Code: code, Message: message}
}

// ApprovalErrorKind enumerates the approval error variants.
type ApprovalErrorKind string

const (
	ApprovalUnauthorized           ApprovalErrorKind = "Unauthorized"
	ApprovalTooOld                 ApprovalErrorKind = "TooOld"
	ApprovalTemporarilyUnavailable ApprovalErrorKind = "TemporarilyUnavailable"
	ApprovalGeneric                ApprovalErrorKind = "GenericError"
)

// ApprovalError is the structured failure of an approve request.
type ApprovalError struct {
	Kind     ApprovalErrorKind `json:"kind"`
	TokenIDs []TokenID         `json:"token_ids,omitempty"`
	Code     uint64            `json:"code"`
	Message  string            `json:"message,omitempty"`
}

func (e *ApprovalError) Error() string {
	switch e.Kind {
	case ApprovalUnauthorized:
		return fmt.Sprintf("approval unauthorized for token ids %v", e.TokenIDs)
	case ApprovalTooOld:
		return "approval created_at is too old"
	case ApprovalTemporarilyUnavailable:
		return "ledger temporarily unavailable, retry later"
	default:
		return fmt.Sprintf("approval error %d: %s", e.Code, e.Message)
	}
}

func errApprovalUnauthorized(ids []TokenID) *ApprovalError {
	sortTokenIDs(ids)
	return &ApprovalError{Kind: ApprovalUnauthorized, TokenIDs: ids}
}

func errApprovalTooOld() *ApprovalError {
	return &ApprovalError{Kind: ApprovalTooOld}
}

func errApprovalUnavailable() *ApprovalError {
	return &ApprovalError{Kind: ApprovalTemporarilyUnavailable}
}

// MintErrorKind categorizes mint failures internally. The protocol's mint
// error channel is plain text; Error() is that text.
type MintErrorKind string

const (
	MintUnauthorized      MintErrorKind = "Unauthorized"
	MintDuplicateID       MintErrorKind = "DuplicateId"
	MintSupplyCapExceeded MintErrorKind = "SupplyCapExceeded"
)

// MintError is a categorized mint failure.
type MintError struct {
	Kind    MintErrorKind `json:"kind"`
	Message string        `json:"message"`
}

func (e *MintError) Error() string { return e.Message }

func errMint(kind MintErrorKind, message string) *MintError {
	return &MintError{Kind: kind, Message: message}
}
