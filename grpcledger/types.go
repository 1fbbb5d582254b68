package grpcledger

import (
	"github.com/holykol/icrc7"
	"github.com/holykol/icrc7/principal"
)

// JSON envelopes carried inside BytesValue requests. Mutating requests name
// the acting principal explicitly: the service trusts the transport layer
// (mTLS, a fronting proxy, or a co-located host) to have authenticated it.

// TransferRequest asks the ledger to move tokens on behalf of Caller.
type TransferRequest struct {
	Caller principal.Principal `json:"caller"`
	Args   icrc7.TransferArgs  `json:"args"`
}

// ApproveRequest registers a delegation on behalf of Caller.
type ApproveRequest struct {
	Caller principal.Principal `json:"caller"`
	Args   icrc7.ApproveArgs   `json:"args"`
}

// MintRequest creates a token on behalf of Caller.
type MintRequest struct {
	Caller principal.Principal `json:"caller"`
	Args   icrc7.MintArgs      `json:"args"`
}

// CollectionMetadataRequest selects which metadata fields to return. An empty
// include list returns everything.
type CollectionMetadataRequest struct {
	Include []string `json:"include,omitempty"`
}
