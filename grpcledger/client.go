package grpcledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/holykol/icrc7"
	"github.com/holykol/icrc7/principal"
)

// Client is a typed wrapper over the Ledger gRPC service. Structured errors
// returned by Transfer and Approve are rebuilt into their icrc7 error types.
type Client struct {
	cc     *grpc.ClientConn
	client LedgerClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: cc, client: NewLedgerClient(cc)}, nil
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

func (c *Client) Name() (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Name(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}
	return reply.GetValue(), nil
}

func (c *Client) Symbol() (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Symbol(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}
	return reply.GetValue(), nil
}

func (c *Client) Description() (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Description(ctx, &emptypb.Empty{})
	if err != nil {
		return "", err
	}
	return reply.GetValue(), nil
}

func (c *Client) Image() ([]byte, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Image(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	return reply.GetValue(), nil
}

func (c *Client) Royalties() (uint16, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Royalties(ctx, &emptypb.Empty{})
	if err != nil {
		return 0, err
	}
	v := reply.GetValue()
	if v > 10000 {
		return 0, fmt.Errorf("grpcledger: royalties %d out of range", v)
	}
	return uint16(v), nil
}

func (c *Client) RoyaltyRecipient() (icrc7.Account, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.RoyaltyRecipient(ctx, &emptypb.Empty{})
	if err != nil {
		return icrc7.Account{}, err
	}
	var account icrc7.Account
	if err := json.Unmarshal(reply.GetValue(), &account); err != nil {
		return icrc7.Account{}, fmt.Errorf("grpcledger: decode royalty recipient: %w", err)
	}
	return account, nil
}

func (c *Client) TotalSupply() (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.TotalSupply(ctx, &emptypb.Empty{})
	if err != nil {
		return 0, err
	}
	return reply.GetValue(), nil
}

func (c *Client) SupplyCap() (uint64, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.SupplyCap(ctx, &emptypb.Empty{})
	if err != nil {
		return 0, err
	}
	return reply.GetValue(), nil
}

func (c *Client) CollectionMetadata(include []string) (icrc7.CollectionMetadata, error) {
	var md icrc7.CollectionMetadata
	in, err := jsonRequest(CollectionMetadataRequest{Include: include})
	if err != nil {
		return md, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.CollectionMetadata(ctx, in)
	if err != nil {
		return md, err
	}
	if err := json.Unmarshal(reply.GetValue(), &md); err != nil {
		return md, fmt.Errorf("grpcledger: decode collection metadata: %w", err)
	}
	return md, nil
}

func (c *Client) TokenMetadata(id icrc7.TokenID) (icrc7.TokenMetadata, error) {
	var md icrc7.TokenMetadata
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.TokenMetadata(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return md, err
	}
	if err := json.Unmarshal(reply.GetValue(), &md); err != nil {
		return md, fmt.Errorf("grpcledger: decode token metadata: %w", err)
	}
	return md, nil
}

func (c *Client) OwnerOf(id icrc7.TokenID) (icrc7.Account, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.OwnerOf(ctx, wrapperspb.String(id.String()))
	if err != nil {
		return icrc7.Account{}, err
	}
	var account icrc7.Account
	if err := json.Unmarshal(reply.GetValue(), &account); err != nil {
		return icrc7.Account{}, fmt.Errorf("grpcledger: decode owner: %w", err)
	}
	return account, nil
}

func (c *Client) BalanceOf(account icrc7.Account) (uint64, error) {
	in, err := jsonRequest(account)
	if err != nil {
		return 0, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.BalanceOf(ctx, in)
	if err != nil {
		return 0, err
	}
	return reply.GetValue(), nil
}

func (c *Client) TokensOf(account icrc7.Account) ([]icrc7.TokenID, error) {
	in, err := jsonRequest(account)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.TokensOf(ctx, in)
	if err != nil {
		return nil, err
	}
	var ids []icrc7.TokenID
	if err := json.Unmarshal(reply.GetValue(), &ids); err != nil {
		return nil, fmt.Errorf("grpcledger: decode token ids: %w", err)
	}
	return ids, nil
}

func (c *Client) SupportedStandards() ([]icrc7.Standard, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.SupportedStandards(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	var stds []icrc7.Standard
	if err := json.Unmarshal(reply.GetValue(), &stds); err != nil {
		return nil, fmt.Errorf("grpcledger: decode standards: %w", err)
	}
	return stds, nil
}

func (c *Client) Transfer(caller principal.Principal, args icrc7.TransferArgs) (uint64, error) {
	in, err := jsonRequest(TransferRequest{Caller: caller, Args: args})
	if err != nil {
		return 0, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Transfer(ctx, in)
	if err != nil {
		return 0, unmapTransferErr(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) Approve(caller principal.Principal, args icrc7.ApproveArgs) (uint64, error) {
	in, err := jsonRequest(ApproveRequest{Caller: caller, Args: args})
	if err != nil {
		return 0, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Approve(ctx, in)
	if err != nil {
		return 0, unmapApprovalErr(err)
	}
	return reply.GetValue(), nil
}

func (c *Client) Mint(caller principal.Principal, args icrc7.MintArgs) (uint64, error) {
	in, err := jsonRequest(MintRequest{Caller: caller, Args: args})
	if err != nil {
		return 0, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	reply, err := c.client.Mint(ctx, in)
	if err != nil {
		return 0, err
	}
	return reply.GetValue(), nil
}

func (c *Client) ctx() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}

func jsonRequest(v interface{}) (*wrapperspb.BytesValue, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("grpcledger: encode request: %w", err)
	}
	return wrapperspb.Bytes(b), nil
}
