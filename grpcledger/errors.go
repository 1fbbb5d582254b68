package grpcledger

import (
	"encoding/json"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/holykol/icrc7"
)

// Ledger errors cross the wire as a gRPC status whose message is the JSON of
// the structured error, so clients can rebuild the exact variant instead of
// matching text. The status code is a coarse classification for generic
// tooling.

func mapLedgerErr(err error) error {
	if err == nil {
		return nil
	}

	var terr *icrc7.TransferError
	if errors.As(err, &terr) {
		return statusWithJSON(transferCode(terr.Kind), terr)
	}
	var aerr *icrc7.ApprovalError
	if errors.As(err, &aerr) {
		return statusWithJSON(approvalCode(aerr.Kind), aerr)
	}
	var merr *icrc7.MintError
	if errors.As(err, &merr) {
		// The mint error channel is plain text by protocol.
		return status.Error(mintCode(merr.Kind), merr.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

func statusWithJSON(code codes.Code, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return status.Error(codes.Internal, "encode ledger error")
	}
	return status.Error(code, string(b))
}

func transferCode(kind icrc7.TransferErrorKind) codes.Code {
	switch kind {
	case icrc7.TransferUnauthorized:
		return codes.PermissionDenied
	case icrc7.TransferTooOld, icrc7.TransferCreatedInFuture:
		return codes.FailedPrecondition
	case icrc7.TransferDuplicate:
		return codes.AlreadyExists
	case icrc7.TransferTemporarilyUnavailable:
		return codes.Unavailable
	default:
		return codes.InvalidArgument
	}
}

func approvalCode(kind icrc7.ApprovalErrorKind) codes.Code {
	switch kind {
	case icrc7.ApprovalUnauthorized:
		return codes.PermissionDenied
	case icrc7.ApprovalTooOld:
		return codes.FailedPrecondition
	case icrc7.ApprovalTemporarilyUnavailable:
		return codes.Unavailable
	default:
		return codes.InvalidArgument
	}
}

func mintCode(kind icrc7.MintErrorKind) codes.Code {
	switch kind {
	case icrc7.MintUnauthorized:
		return codes.PermissionDenied
	case icrc7.MintDuplicateID:
		return codes.AlreadyExists
	case icrc7.MintSupplyCapExceeded:
		return codes.ResourceExhausted
	default:
		return codes.InvalidArgument
	}
}

// unmapTransferErr rebuilds the structured transfer error carried in a
// status, or returns err unchanged when it is not one.
func unmapTransferErr(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var terr icrc7.TransferError
	if jerr := json.Unmarshal([]byte(st.Message()), &terr); jerr != nil || terr.Kind == "" {
		return err
	}
	return &terr
}

// unmapApprovalErr rebuilds the structured approval error carried in a
// status, or returns err unchanged when it is not one.
func unmapApprovalErr(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	var aerr icrc7.ApprovalError
	if jerr := json.Unmarshal([]byte(st.Message()), &aerr); jerr != nil || aerr.Kind == "" {
		return err
	}
	return &aerr
}
