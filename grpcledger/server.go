// Package grpcledger exposes an icrc7.Ledger over gRPC without a codegen
// toolchain: scalar payloads use protobuf well-known types and structured
// payloads are canonical JSON inside BytesValue.
package grpcledger

import (
	"context"
	"encoding/json"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/holykol/icrc7"
)

// Server exposes a single ledger over the Ledger gRPC service.
//
// The ledger expects serialized access; the server's mutex provides it, so
// one Server may be registered on a concurrent gRPC server as is.
type Server struct {
	UnimplementedLedgerServer

	// Ledger is the state machine being served. Required.
	Ledger *icrc7.Ledger

	// Persist, when set, receives a fresh snapshot after every successful
	// mutation. A persist failure is reported to the caller even though the
	// in-memory mutation stands: after a crash-restart from the older
	// snapshot, retrying a timestamped request is deduplicated, so the
	// caller can always safely retry.
	Persist func(ctx context.Context, snapshot []byte) error

	mu sync.Mutex
}

func (s *Server) Name(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.String(l.Name()), nil
}

func (s *Server) Symbol(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.String(l.Symbol()), nil
}

func (s *Server) Description(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.String(l.Description()), nil
}

func (s *Server) Image(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.Bytes(l.Image()), nil
}

func (s *Server) Royalties(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt32Value, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.UInt32(uint32(l.Royalties())), nil
}

func (s *Server) RoyaltyRecipient(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return jsonReply(l.RoyaltyRecipient())
}

func (s *Server) TotalSupply(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.UInt64(l.TotalSupply()), nil
}

func (s *Server) SupplyCap(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.UInt64(l.SupplyCap()), nil
}

func (s *Server) CollectionMetadata(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	var req CollectionMetadataRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return jsonReply(l.CollectionMetadata(req.Include))
}

func (s *Server) TokenMetadata(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	id, err := icrc7.ParseTokenID(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed token id")
	}
	l, lerr := s.lock()
	if lerr != nil {
		return nil, lerr
	}
	defer s.mu.Unlock()

	md, ok := l.Metadata(id)
	if !ok {
		return nil, status.Error(codes.NotFound, "token does not exist")
	}
	return jsonReply(md)
}

func (s *Server) OwnerOf(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	id, err := icrc7.ParseTokenID(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "malformed token id")
	}
	l, lerr := s.lock()
	if lerr != nil {
		return nil, lerr
	}
	defer s.mu.Unlock()

	owner, ok := l.OwnerOf(id)
	if !ok {
		return nil, status.Error(codes.NotFound, "token does not exist")
	}
	return jsonReply(owner)
}

func (s *Server) BalanceOf(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	var account icrc7.Account
	if err := decodeRequest(in, &account); err != nil {
		return nil, err
	}
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return wrapperspb.UInt64(l.BalanceOf(account)), nil
}

func (s *Server) TokensOf(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	var account icrc7.Account
	if err := decodeRequest(in, &account); err != nil {
		return nil, err
	}
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	ids := l.TokensOf(account)
	if ids == nil {
		ids = []icrc7.TokenID{}
	}
	return jsonReply(ids)
}

func (s *Server) SupportedStandards(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return jsonReply(l.SupportedStandards())
}

func (s *Server) Transfer(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	var req TransferRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.Caller.Empty() {
		return nil, status.Error(codes.InvalidArgument, "caller is required")
	}
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	index, terr := l.Transfer(req.Caller, req.Args)
	if terr != nil {
		return nil, mapLedgerErr(terr)
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.UInt64(index), nil
}

func (s *Server) Approve(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	var req ApproveRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.Caller.Empty() {
		return nil, status.Error(codes.InvalidArgument, "caller is required")
	}
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	index, aerr := l.Approve(req.Caller, req.Args)
	if aerr != nil {
		return nil, mapLedgerErr(aerr)
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.UInt64(index), nil
}

func (s *Server) Mint(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	var req MintRequest
	if err := decodeRequest(in, &req); err != nil {
		return nil, err
	}
	if req.Caller.Empty() {
		return nil, status.Error(codes.InvalidArgument, "caller is required")
	}
	l, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	index, merr := l.MintToken(req.Caller, req.Args)
	if merr != nil {
		return nil, mapLedgerErr(merr)
	}
	if err := s.persistLocked(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.UInt64(index), nil
}

// lock acquires the ledger mutex; the caller unlocks.
func (s *Server) lock() (*icrc7.Ledger, error) {
	if s == nil || s.Ledger == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing ledger")
	}
	s.mu.Lock()
	return s.Ledger, nil
}

// persistLocked snapshots the ledger and hands it to the persist hook. Must
// be called with the mutex held.
func (s *Server) persistLocked(ctx context.Context) error {
	if s.Persist == nil {
		return nil
	}
	snapshot, err := s.Ledger.MarshalSnapshot()
	if err != nil {
		return status.Error(codes.Internal, "snapshot ledger: "+err.Error())
	}
	if err := s.Persist(ctx, snapshot); err != nil {
		return status.Error(codes.Unavailable, "persist snapshot: "+err.Error())
	}
	return nil
}

func decodeRequest(in *wrapperspb.BytesValue, v interface{}) error {
	if err := json.Unmarshal(in.GetValue(), v); err != nil {
		return status.Error(codes.InvalidArgument, "malformed request: "+err.Error())
	}
	return nil
}

func jsonReply(v interface{}) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "encode reply")
	}
	return wrapperspb.Bytes(b), nil
}
