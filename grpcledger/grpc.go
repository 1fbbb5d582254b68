package grpcledger

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// LedgerServer is the server API for the Ledger gRPC service.
//
// We intentionally use protobuf well-known types so this package does not
// require a protoc/codegen toolchain. Scalar requests and replies ride the
// wrapper types; structured ones are JSON inside BytesValue (see types.go for
// the envelopes).
//
// Proto definition: ledger.proto.
type LedgerServer interface {
	Name(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Symbol(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Description(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Image(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Royalties(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error)
	RoyaltyRecipient(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	TotalSupply(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	SupplyCap(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error)
	CollectionMetadata(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	TokenMetadata(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	OwnerOf(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	BalanceOf(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
	TokensOf(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	SupportedStandards(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Transfer(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
	Approve(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
	Mint(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error)
}

// UnimplementedLedgerServer can be embedded to have forward compatible implementations.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) Name(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Name not implemented")
}
func (UnimplementedLedgerServer) Symbol(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Symbol not implemented")
}
func (UnimplementedLedgerServer) Description(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Description not implemented")
}
func (UnimplementedLedgerServer) Image(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Image not implemented")
}
func (UnimplementedLedgerServer) Royalties(context.Context, *emptypb.Empty) (*wrapperspb.UInt32Value, error) {
	return nil, status.Error(codes.Unimplemented, "method Royalties not implemented")
}
func (UnimplementedLedgerServer) RoyaltyRecipient(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method RoyaltyRecipient not implemented")
}
func (UnimplementedLedgerServer) TotalSupply(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method TotalSupply not implemented")
}
func (UnimplementedLedgerServer) SupplyCap(context.Context, *emptypb.Empty) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method SupplyCap not implemented")
}
func (UnimplementedLedgerServer) CollectionMetadata(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CollectionMetadata not implemented")
}
func (UnimplementedLedgerServer) TokenMetadata(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method TokenMetadata not implemented")
}
func (UnimplementedLedgerServer) OwnerOf(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method OwnerOf not implemented")
}
func (UnimplementedLedgerServer) BalanceOf(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method BalanceOf not implemented")
}
func (UnimplementedLedgerServer) TokensOf(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method TokensOf not implemented")
}
func (UnimplementedLedgerServer) SupportedStandards(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method SupportedStandards not implemented")
}
func (UnimplementedLedgerServer) Transfer(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method Transfer not implemented")
}
func (UnimplementedLedgerServer) Approve(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method Approve not implemented")
}
func (UnimplementedLedgerServer) Mint(context.Context, *wrapperspb.BytesValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method Mint not implemented")
}

// RegisterLedgerServer registers the Ledger service on a gRPC server.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

// LedgerClient is the client API for the Ledger gRPC service.
type LedgerClient interface {
	Name(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Symbol(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Description(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Image(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Royalties(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt32Value, error)
	RoyaltyRecipient(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	TotalSupply(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	SupplyCap(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	CollectionMetadata(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	TokenMetadata(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	OwnerOf(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	BalanceOf(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	TokensOf(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	SupportedStandards(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Transfer(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	Approve(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	Mint(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
}

type ledgerClient struct{ cc grpc.ClientConnInterface }

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient { return &ledgerClient{cc: cc} }

const serviceName = "holykol.icrc7.v1.Ledger"

func (c *ledgerClient) Name(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Name", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Symbol(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Symbol", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Description(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Description", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Image(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Image", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Royalties(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt32Value, error) {
	out := new(wrapperspb.UInt32Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Royalties", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) RoyaltyRecipient(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/RoyaltyRecipient", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) TotalSupply(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/TotalSupply", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) SupplyCap(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SupplyCap", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) CollectionMetadata(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CollectionMetadata", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) TokenMetadata(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/TokenMetadata", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) OwnerOf(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/OwnerOf", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) BalanceOf(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/BalanceOf", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) TokensOf(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/TokensOf", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) SupportedStandards(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/SupportedStandards", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Transfer(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Transfer", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Approve(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Approve", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) Mint(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Mint", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func unaryHandler[Req any](method string, call func(LedgerServer, context.Context, *Req) (interface{}, error)) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	full := "/" + serviceName + "/" + method
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(LedgerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Ledger_ServiceDesc is the grpc.ServiceDesc for Ledger service.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Name", Handler: unaryHandler("Name", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Name(ctx, in)
		})},
		{MethodName: "Symbol", Handler: unaryHandler("Symbol", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Symbol(ctx, in)
		})},
		{MethodName: "Description", Handler: unaryHandler("Description", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Description(ctx, in)
		})},
		{MethodName: "Image", Handler: unaryHandler("Image", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Image(ctx, in)
		})},
		{MethodName: "Royalties", Handler: unaryHandler("Royalties", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.Royalties(ctx, in)
		})},
		{MethodName: "RoyaltyRecipient", Handler: unaryHandler("RoyaltyRecipient", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.RoyaltyRecipient(ctx, in)
		})},
		{MethodName: "TotalSupply", Handler: unaryHandler("TotalSupply", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.TotalSupply(ctx, in)
		})},
		{MethodName: "SupplyCap", Handler: unaryHandler("SupplyCap", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.SupplyCap(ctx, in)
		})},
		{MethodName: "CollectionMetadata", Handler: unaryHandler("CollectionMetadata", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (interface{}, error) {
			return s.CollectionMetadata(ctx, in)
		})},
		{MethodName: "TokenMetadata", Handler: unaryHandler("TokenMetadata", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
			return s.TokenMetadata(ctx, in)
		})},
		{MethodName: "OwnerOf", Handler: unaryHandler("OwnerOf", func(s LedgerServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
			return s.OwnerOf(ctx, in)
		})},
		{MethodName: "BalanceOf", Handler: unaryHandler("BalanceOf", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (interface{}, error) {
			return s.BalanceOf(ctx, in)
		})},
		{MethodName: "TokensOf", Handler: unaryHandler("TokensOf", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (interface{}, error) {
			return s.TokensOf(ctx, in)
		})},
		{MethodName: "SupportedStandards", Handler: unaryHandler("SupportedStandards", func(s LedgerServer, ctx context.Context, in *emptypb.Empty) (interface{}, error) {
			return s.SupportedStandards(ctx, in)
		})},
		{MethodName: "Transfer", Handler: unaryHandler("Transfer", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (interface{}, error) {
			return s.Transfer(ctx, in)
		})},
		{MethodName: "Approve", Handler: unaryHandler("Approve", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (interface{}, error) {
			return s.Approve(ctx, in)
		})},
		{MethodName: "Mint", Handler: unaryHandler("Mint", func(s LedgerServer, ctx context.Context, in *wrapperspb.BytesValue) (interface{}, error) {
			return s.Mint(ctx, in)
		})},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ledger.proto",
}
