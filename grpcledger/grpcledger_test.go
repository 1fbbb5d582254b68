package grpcledger

import (
	"context"
	"crypto/ed25519"
	"errors"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/holykol/icrc7"
	"github.com/holykol/icrc7/principal"
	"github.com/holykol/icrc7/store/localfs"
)

func testPrincipal(t *testing.T, seed byte) principal.Principal {
	t.Helper()
	var s [ed25519.SeedSize]byte
	s[0] = seed
	key := ed25519.NewKeyFromSeed(s[:])
	return principal.SelfAuthenticating(key.Public().(ed25519.PublicKey))
}

func dialTestServer(t *testing.T, srv *Server) *Client {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	gs := grpc.NewServer()
	RegisterLedgerServer(gs, srv)

	go func() {
		_ = gs.Serve(lis)
	}()
	t.Cleanup(gs.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	t.Cleanup(func() { cc.Close() })

	return &Client{cc: cc, client: NewLedgerClient(cc), Timeout: 2 * time.Second}
}

func TestGRPCLedger_RoundTrip(t *testing.T) {
	authority := testPrincipal(t, 1)
	alice := testPrincipal(t, 2)
	bob := testPrincipal(t, 3)

	ledger, err := icrc7.New(icrc7.InitArgs{
		Name:      "Icarus Flight Badges",
		Symbol:    "icarus",
		Authority: authority,
	})
	if err != nil {
		t.Fatalf("icrc7.New: %v", err)
	}

	snapshots, err := localfs.New(t.TempDir())
	if err != nil {
		t.Fatalf("localfs.New: %v", err)
	}
	client := dialTestServer(t, &Server{Ledger: ledger, Persist: snapshots.Save})

	name, err := client.Name()
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "Icarus Flight Badges" {
		t.Fatalf("Name = %q", name)
	}
	symbol, err := client.Symbol()
	if err != nil {
		t.Fatalf("Symbol: %v", err)
	}
	if symbol != "ICARUS" {
		t.Fatalf("Symbol = %q", symbol)
	}

	id := icrc7.NewTokenID(1)
	index, err := client.Mint(authority, icrc7.MintArgs{
		ID:    id,
		Name:  "badge #1",
		Owner: icrc7.AccountFromOwner(alice),
	})
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if index != 0 {
		t.Fatalf("mint index = %d, want 0", index)
	}

	index, err = client.Transfer(alice, icrc7.TransferArgs{
		To:       icrc7.AccountFromOwner(bob),
		TokenIDs: icrc7.NewTokenIDSet(id),
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if index != 1 {
		t.Fatalf("transfer index = %d, want 1", index)
	}

	owner, err := client.OwnerOf(id)
	if err != nil {
		t.Fatalf("OwnerOf: %v", err)
	}
	if !owner.Equal(icrc7.AccountFromOwner(bob)) {
		t.Fatalf("owner = %v, want bob", owner)
	}

	balance, err := client.BalanceOf(icrc7.AccountFromOwner(bob))
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if balance != 1 {
		t.Fatalf("balance = %d, want 1", balance)
	}

	// The persist hook ran on every mutation; a ledger restored from the
	// saved snapshot agrees with the live one.
	saved, err := snapshots.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	restored, err := icrc7.RestoreSnapshot(saved)
	if err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if got, ok := restored.OwnerOf(id); !ok || !got.Equal(icrc7.AccountFromOwner(bob)) {
		t.Fatalf("restored owner = %v, want bob", got)
	}
}

func TestGRPCLedger_StructuredTransferError(t *testing.T) {
	authority := testPrincipal(t, 1)
	alice := testPrincipal(t, 2)
	bob := testPrincipal(t, 3)

	ledger, err := icrc7.New(icrc7.InitArgs{Name: "c", Symbol: "X", Authority: authority})
	if err != nil {
		t.Fatalf("icrc7.New: %v", err)
	}
	client := dialTestServer(t, &Server{Ledger: ledger})

	id := icrc7.NewTokenID(1)
	if _, err := client.Mint(authority, icrc7.MintArgs{ID: id, Owner: icrc7.AccountFromOwner(alice)}); err != nil {
		t.Fatalf("Mint: %v", err)
	}

	// Bob does not own the token; the error variant survives the wire.
	_, err = client.Transfer(bob, icrc7.TransferArgs{
		To:       icrc7.AccountFromOwner(authority),
		TokenIDs: icrc7.NewTokenIDSet(id),
	})
	var terr *icrc7.TransferError
	if !errors.As(err, &terr) || terr.Kind != icrc7.TransferUnauthorized {
		t.Fatalf("error = %v, want Unauthorized", err)
	}
	if len(terr.TokenIDs) != 1 || terr.TokenIDs[0] != id {
		t.Fatalf("failing ids = %v, want [%s]", terr.TokenIDs, id)
	}
}

func TestGRPCLedger_MintErrorsArePlainText(t *testing.T) {
	authority := testPrincipal(t, 1)
	alice := testPrincipal(t, 2)

	ledger, err := icrc7.New(icrc7.InitArgs{Name: "c", Symbol: "X", Authority: authority})
	if err != nil {
		t.Fatalf("icrc7.New: %v", err)
	}
	client := dialTestServer(t, &Server{Ledger: ledger})

	_, err = client.Mint(alice, icrc7.MintArgs{ID: icrc7.NewTokenID(1), Owner: icrc7.AccountFromOwner(alice)})
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestGRPCLedger_UnknownTokenNotFound(t *testing.T) {
	authority := testPrincipal(t, 1)

	ledger, err := icrc7.New(icrc7.InitArgs{Name: "c", Symbol: "X", Authority: authority})
	if err != nil {
		t.Fatalf("icrc7.New: %v", err)
	}
	client := dialTestServer(t, &Server{Ledger: ledger})

	if _, err := client.OwnerOf(icrc7.NewTokenID(404)); err == nil {
		t.Fatal("expected an error for unknown token")
	}
}
