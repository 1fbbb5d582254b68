// Command icrc7 is a CLI client for an icrc7d ledger daemon.
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/holykol/icrc7"
	"github.com/holykol/icrc7/grpcledger"
	"github.com/holykol/icrc7/identity"
	"github.com/holykol/icrc7/principal"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "identity":
		return cmdIdentity(args[1:], out, errOut)
	case "mint":
		return cmdMint(args[1:], out, errOut)
	case "transfer":
		return cmdTransfer(args[1:], out, errOut)
	case "approve":
		return cmdApprove(args[1:], out, errOut)
	case "owner-of":
		return cmdOwnerOf(args[1:], out, errOut)
	case "balance-of":
		return cmdBalanceOf(args[1:], out, errOut)
	case "tokens-of":
		return cmdTokensOf(args[1:], out, errOut)
	case "metadata":
		return cmdMetadata(args[1:], out, errOut)
	case "collection":
		return cmdCollection(args[1:], out, errOut)
	case "standards":
		return cmdStandards(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "icrc7: ICRC-7 ledger CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  icrc7 identity init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  icrc7 identity list")
	fmt.Fprintln(w, "  icrc7 mint --as <identity> --id <id> --owner <account> [--token-name <text>] [--image-file <path> | --image-b64 <data>]")
	fmt.Fprintln(w, "  icrc7 transfer --as <identity> --to <account> --ids <id,id,...> [--from <account>] [--memo <text>] [--created-at now|<ns>] [--non-atomic]")
	fmt.Fprintln(w, "  icrc7 approve --as <identity> --to <principal> [--ids <id,id,...>] [--from-sub <64hex>] [--expires-at <ns>] [--memo <text>]")
	fmt.Fprintln(w, "  icrc7 owner-of --id <id>")
	fmt.Fprintln(w, "  icrc7 balance-of --account <account>")
	fmt.Fprintln(w, "  icrc7 tokens-of --account <account>")
	fmt.Fprintln(w, "  icrc7 metadata --id <id>")
	fmt.Fprintln(w, "  icrc7 collection [--include <field,field,...>]")
	fmt.Fprintln(w, "  icrc7 standards")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - accounts are <principal> or <principal>:<64-hex subaccount>")
	fmt.Fprintln(w, "  - identities live under ~/.icrc7/identities (0600 seed files)")
	fmt.Fprintln(w, "  - every command accepts --target (default 127.0.0.1:7701) and --identity-dir")
}

// commonFlags are shared by all subcommands that talk to the daemon.
type commonFlags struct {
	target      string
	timeout     time.Duration
	identityDir string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.target, "target", "127.0.0.1:7701", "ledger daemon address")
	fs.DurationVar(&c.timeout, "timeout", 10*time.Second, "per-RPC timeout")
	fs.StringVar(&c.identityDir, "identity-dir", "", "identity directory (default ~/.icrc7/identities)")
}

func (c *commonFlags) dial() (*grpcledger.Client, error) {
	client, err := grpcledger.Dial(c.target, grpcledger.DialOptions{Timeout: c.timeout})
	if err != nil {
		return nil, err
	}
	client.Timeout = c.timeout
	return client, nil
}

func (c *commonFlags) resolveCaller(name string) (principal.Principal, error) {
	if name == "" {
		return "", fmt.Errorf("--as is required")
	}
	store, err := identity.NewStore(c.identityDir)
	if err != nil {
		return "", err
	}
	return store.Principal(name)
}

// parseAccount reads "<principal>" or "<principal>:<hex subaccount>".
func parseAccount(s string) (icrc7.Account, error) {
	text, subHex, hasSub := strings.Cut(s, ":")
	owner, err := principal.FromText(text)
	if err != nil {
		return icrc7.Account{}, fmt.Errorf("account %q: %w", s, err)
	}
	account := icrc7.Account{Owner: owner}
	if hasSub {
		raw, err := hex.DecodeString(subHex)
		if err != nil {
			return icrc7.Account{}, fmt.Errorf("account %q: bad subaccount hex: %w", s, err)
		}
		sub, err := icrc7.SubaccountFromBytes(raw)
		if err != nil {
			return icrc7.Account{}, fmt.Errorf("account %q: %w", s, err)
		}
		account.Subaccount = &sub
	}
	return account, nil
}

func parseTokenIDs(s string) (icrc7.TokenIDSet, error) {
	if s == "" {
		return nil, nil
	}
	ids := icrc7.NewTokenIDSet()
	for _, part := range strings.Split(s, ",") {
		id, err := icrc7.ParseTokenID(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("token id %q: %w", part, err)
		}
		ids[id] = struct{}{}
	}
	return ids, nil
}

func printJSON(out io.Writer, v interface{}) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return 1
	}
	fmt.Fprintln(out, string(b))
	return 0
}

func cmdIdentity(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: icrc7 identity <init|list|principal> ...")
		return 2
	}
	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("identity init", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "identity name")
		seedHex := fs.String("seed-hex", "", "ed25519 seed (64 hex chars); random when omitted")
		force := fs.Bool("force", false, "overwrite an existing identity")
		dir := fs.String("identity-dir", "", "identity directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		seed := make([]byte, ed25519.SeedSize)
		if *seedHex != "" {
			var err error
			seed, err = identity.ParseSeedHex(*seedHex)
			if err != nil {
				fmt.Fprintf(errOut, "seed: %v\n", err)
				return 2
			}
		} else if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "generate seed: %v\n", err)
			return 1
		}

		store, err := identity.NewStore(*dir)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		p, path, err := store.Create(*name, seed, *force)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintf(out, "%s\t%s\n", p.Text(), path)
		return 0

	case "list":
		fs := flag.NewFlagSet("identity list", flag.ContinueOnError)
		fs.SetOutput(errOut)
		dir := fs.String("identity-dir", "", "identity directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		store, err := identity.NewStore(*dir)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		entries, err := store.List()
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s\t%s\n", e.Name, e.Principal.Text())
		}
		return 0

	case "principal":
		fs := flag.NewFlagSet("identity principal", flag.ContinueOnError)
		fs.SetOutput(errOut)
		name := fs.String("name", "", "identity name")
		dir := fs.String("identity-dir", "", "identity directory")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		store, err := identity.NewStore(*dir)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		p, err := store.Principal(*name)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1
		}
		fmt.Fprintln(out, p.Text())
		return 0

	default:
		fmt.Fprintf(errOut, "unknown identity subcommand: %s\n", args[0])
		return 2
	}
}

func cmdMint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("mint", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	as := fs.String("as", "", "acting identity (must be the collection authority)")
	idStr := fs.String("id", "", "token id (decimal)")
	tokenName := fs.String("token-name", "", "token name")
	ownerStr := fs.String("owner", "", "owner account")
	imageFile := fs.String("image-file", "", "read the token image from a file")
	imageB64 := fs.String("image-b64", "", "token image as base64")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	id, err := icrc7.ParseTokenID(*idStr)
	if err != nil {
		fmt.Fprintf(errOut, "token id: %v\n", err)
		return 2
	}
	owner, err := parseAccount(*ownerStr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	var image []byte
	switch {
	case *imageFile != "" && *imageB64 != "":
		fmt.Fprintln(errOut, "--image-file and --image-b64 are mutually exclusive")
		return 2
	case *imageFile != "":
		image, err = os.ReadFile(*imageFile)
		if err != nil {
			fmt.Fprintf(errOut, "read image: %v\n", err)
			return 1
		}
	case *imageB64 != "":
		image, err = base64.StdEncoding.DecodeString(*imageB64)
		if err != nil {
			fmt.Fprintf(errOut, "decode image: %v\n", err)
			return 2
		}
	}

	caller, err := common.resolveCaller(*as)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	index, err := client.Mint(caller, icrc7.MintArgs{ID: id, Name: *tokenName, Image: image, Owner: owner})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, index)
	return 0
}

func cmdTransfer(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("transfer", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	as := fs.String("as", "", "acting identity")
	toStr := fs.String("to", "", "destination account")
	fromStr := fs.String("from", "", "source account (default: the caller's default account)")
	idsStr := fs.String("ids", "", "token ids, comma separated")
	memo := fs.String("memo", "", "request memo")
	createdAt := fs.String("created-at", "", `request timestamp in ns, or "now" for dedup protection`)
	nonAtomic := fs.Bool("non-atomic", false, "apply token ids independently")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	to, err := parseAccount(*toStr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	ids, err := parseTokenIDs(*idsStr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	transferArgs := icrc7.TransferArgs{To: to, TokenIDs: ids}
	if *fromStr != "" {
		from, err := parseAccount(*fromStr)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 2
		}
		transferArgs.From = &from
	}
	if *memo != "" {
		transferArgs.Memo = []byte(*memo)
	}
	switch *createdAt {
	case "":
	case "now":
		transferArgs.CreatedAtTime = uint64(time.Now().UnixNano())
	default:
		if _, err := fmt.Sscanf(*createdAt, "%d", &transferArgs.CreatedAtTime); err != nil {
			fmt.Fprintf(errOut, "created-at: %v\n", err)
			return 2
		}
	}
	if *nonAtomic {
		atomic := false
		transferArgs.IsAtomic = &atomic
	}

	caller, err := common.resolveCaller(*as)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	index, err := client.Transfer(caller, transferArgs)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, index)
	return 0
}

func cmdApprove(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("approve", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	as := fs.String("as", "", "acting identity")
	toStr := fs.String("to", "", "spender principal")
	idsStr := fs.String("ids", "", "token ids, comma separated (default: all owned tokens)")
	fromSub := fs.String("from-sub", "", "restrict to one source subaccount (64 hex chars)")
	expiresAt := fs.Uint64("expires-at", 0, "expiry in ns since epoch (0 = never)")
	memo := fs.String("memo", "", "request memo")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	to, err := principal.FromText(*toStr)
	if err != nil {
		fmt.Fprintf(errOut, "spender: %v\n", err)
		return 2
	}
	ids, err := parseTokenIDs(*idsStr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	approveArgs := icrc7.ApproveArgs{To: to, TokenIDs: ids, ExpiresAt: *expiresAt}
	if *fromSub != "" {
		raw, err := hex.DecodeString(*fromSub)
		if err != nil {
			fmt.Fprintf(errOut, "from-sub: %v\n", err)
			return 2
		}
		sub, err := icrc7.SubaccountFromBytes(raw)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 2
		}
		approveArgs.FromSubaccount = &sub
	}
	if *memo != "" {
		approveArgs.Memo = []byte(*memo)
	}

	caller, err := common.resolveCaller(*as)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}
	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	index, err := client.Approve(caller, approveArgs)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, index)
	return 0
}

func cmdOwnerOf(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("owner-of", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	idStr := fs.String("id", "", "token id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	id, err := icrc7.ParseTokenID(*idStr)
	if err != nil {
		fmt.Fprintf(errOut, "token id: %v\n", err)
		return 2
	}

	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	owner, err := client.OwnerOf(id)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, owner.String())
	return 0
}

func cmdBalanceOf(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("balance-of", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	accountStr := fs.String("account", "", "account to query")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	account, err := parseAccount(*accountStr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	balance, err := client.BalanceOf(account)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	fmt.Fprintln(out, balance)
	return 0
}

func cmdTokensOf(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("tokens-of", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	accountStr := fs.String("account", "", "account to query")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	account, err := parseAccount(*accountStr)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 2
	}

	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	ids, err := client.TokensOf(account)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
	return 0
}

func cmdMetadata(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("metadata", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	idStr := fs.String("id", "", "token id")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	id, err := icrc7.ParseTokenID(*idStr)
	if err != nil {
		fmt.Fprintf(errOut, "token id: %v\n", err)
		return 2
	}

	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	md, err := client.TokenMetadata(id)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return printJSON(out, md)
}

func cmdCollection(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("collection", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	include := fs.String("include", "", "metadata fields to include, comma separated (default: all)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var fields []string
	if *include != "" {
		for _, f := range strings.Split(*include, ",") {
			fields = append(fields, strings.TrimSpace(f))
		}
	}

	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	md, err := client.CollectionMetadata(fields)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	return printJSON(out, md)
}

func cmdStandards(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("standards", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	client, err := common.dial()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer client.Close()

	stds, err := client.SupportedStandards()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	for _, s := range stds {
		fmt.Fprintf(out, "%s\t%s\n", s.Name, s.URL)
	}
	return 0
}
