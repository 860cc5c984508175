package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/stegpng/cidutil"
	"xdao.co/stegpng/compliance"
	"xdao.co/stegpng/keys"
	"xdao.co/stegpng/png"
	"xdao.co/stegpng/stego"
	"xdao.co/stegpng/storage/grpcstore"
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
	case "encode":
		return cmdEncode(args[1:], out, errOut)
	case "decode":
		return cmdDecode(args[1:], out, errOut)
	case "remove":
		return cmdRemove(args[1:], out, errOut)
	case "print":
		return cmdPrint(args[1:], out, errOut)
	case "check":
		return cmdCheck(args[1:], out, errOut)
	case "cid":
		return cmdCID(args[1:], out, errOut)
	case "sign":
		return cmdSign(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "store":
		return cmdStore(args[1:], out, errOut)
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
	fmt.Fprintln(w, "stegpng: hide, recover, and sign messages in PNG chunk streams")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  stegpng encode [-o <out.png>] <file> <chunk-type> <message>")
	fmt.Fprintln(w, "  stegpng decode <file> <chunk-type>")
	fmt.Fprintln(w, "  stegpng remove [-o <out.png>] <file> <chunk-type>")
	fmt.Fprintln(w, "  stegpng print <file>")
	fmt.Fprintln(w, "  stegpng check [--mode permissive|strict] <file>")
	fmt.Fprintln(w, "  stegpng cid <file>")
	fmt.Fprintln(w, "  stegpng sign [-o <out.png>] (--seed-hex <64hex> | --signer <name> [--signer-role <role>] | --key-file <path>) <file> <chunk-type>")
	fmt.Fprintln(w, "  stegpng verify <file> <chunk-type>")
	fmt.Fprintln(w, "  stegpng key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  stegpng key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  stegpng key list")
	fmt.Fprintln(w, "  stegpng key export --name <name> [--role <role>]")
	fmt.Fprintln(w, "  stegpng store put --target <addr> <file>")
	fmt.Fprintln(w, "  stegpng store get --target <addr> [-o <file>] <cid>")
	fmt.Fprintln(w, "  stegpng store has --target <addr> <cid>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - chunk-type is a 4-letter code; pick an ancillary, safe-to-copy one (e.g. ruSt)")
	fmt.Fprintln(w, "  - --seed-hex must be 32 bytes (64 hex chars) ed25519 seed")
	fmt.Fprintln(w, "  - KMS-lite stores keys under ~/.stegpng/keys/<name> (0600 private key files)")
	fmt.Fprintln(w, "  - store talks to a stegpng-stored daemon; put only accepts well-formed PNGs")
}

func cmdEncode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	outPath := fs.String("o", "output.png", "Output file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 3 {
		fmt.Fprintln(errOut, "usage: stegpng encode [-o <out.png>] <file> <chunk-type> <message>")
		return 2
	}
	carrier, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	rewritten, err := stego.Embed(carrier, fs.Arg(1), fs.Arg(2))
	if err != nil {
		fmt.Fprintf(errOut, "encode: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*outPath, rewritten, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", *outPath, err)
		return 1
	}
	fmt.Fprintf(out, "%s\n", *outPath)
	return 0
}

func cmdDecode(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: stegpng decode <file> <chunk-type>")
		return 2
	}
	carrier, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	msg, found, err := stego.Extract(carrier, fs.Arg(1))
	if err != nil {
		fmt.Fprintf(errOut, "decode: %v\n", err)
		return 1
	}
	if !found {
		fmt.Fprintln(out, "Nothing to decode")
		return 0
	}
	fmt.Fprintln(out, msg)
	return 0
}

func cmdRemove(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(errOut)
	outPath := fs.String("o", "", "Output file (default: rewrite in place)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: stegpng remove [-o <out.png>] <file> <chunk-type>")
		return 2
	}
	path := fs.Arg(0)
	carrier, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	rewritten, removed, err := stego.Remove(carrier, fs.Arg(1))
	if err != nil {
		fmt.Fprintf(errOut, "remove: %v\n", err)
		return 1
	}
	if *outPath == "" {
		*outPath = path
	}
	if err := os.WriteFile(*outPath, rewritten, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", *outPath, err)
		return 1
	}
	fmt.Fprintf(out, "Removed %s chunk (%d payload bytes)\n", removed.Type(), removed.Length())
	return 0
}

func cmdPrint(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: stegpng print <file>")
		return 2
	}
	carrier, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	report, err := stego.Report(carrier)
	if err != nil {
		fmt.Fprintf(errOut, "print: %v\n", err)
		return 1
	}
	_, _ = io.WriteString(out, report)
	return 0
}

func cmdCheck(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(errOut)
	mode := fs.String("mode", "strict", "Compliance mode: permissive or strict")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: stegpng check [--mode permissive|strict] <file>")
		return 2
	}

	var m compliance.ComplianceMode
	switch strings.ToLower(strings.TrimSpace(*mode)) {
	case "", "strict":
		m = compliance.Strict
	case "permissive":
		m = compliance.Permissive
	default:
		fmt.Fprintln(errOut, "invalid --mode (expected permissive or strict)")
		return 2
	}

	carrier, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	p, err := png.Parse(carrier)
	if err != nil {
		fmt.Fprintf(errOut, "invalid: %v\n", err)
		return 1
	}
	if m == compliance.Strict {
		violations := png.ValidateRulesAll(p, png.StructuralRules())
		if len(violations) > 0 {
			for _, v := range violations {
				fmt.Fprintf(errOut, "invalid: %v\n", v)
			}
			return 1
		}
	}
	fmt.Fprintln(out, "OK")
	return 0
}

func cmdCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: stegpng cid <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}
	_, _ = fmt.Fprintln(out, cidutil.CIDv1RawSHA256(b))
	return 0
}

func cmdSign(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var seedHex string
	var signerName string
	var signerRole string
	var keyFile string
	outPath := fs.String("o", "", "Output file (default: rewrite in place)")
	fs.StringVar(&seedHex, "seed-hex", "", "ed25519 seed as 64 hex chars")
	fs.StringVar(&signerName, "signer", "", "Use a stored key by name (from 'stegpng key init')")
	fs.StringVar(&signerRole, "signer-role", "", "When using --signer, optionally use a derived role key")
	fs.StringVar(&keyFile, "key-file", "", "Path to a seed file (hex) created by 'stegpng key init/derive'")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: stegpng sign [-o <out.png>] (--seed-hex ... | --signer ... | --key-file ...) <file> <chunk-type>")
		return 2
	}
	if seedHex == "" && signerName == "" && keyFile == "" {
		fmt.Fprintln(errOut, "missing signer: use --seed-hex, --signer, or --key-file")
		return 2
	}
	if seedHex != "" && (signerName != "" || keyFile != "") {
		fmt.Fprintln(errOut, "conflicting signer flags: --seed-hex cannot be combined with --signer or --key-file")
		return 2
	}
	if signerName != "" && keyFile != "" {
		fmt.Fprintln(errOut, "conflicting signer flags: --signer cannot be combined with --key-file")
		return 2
	}

	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	seed, err := ks.LoadSeed(seedHex, signerName, signerRole, keyFile)
	if err != nil {
		fmt.Fprintf(errOut, "invalid signer: %v\n", err)
		return 2
	}

	path := fs.Arg(0)
	carrier, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	rewritten, err := stego.SignEd25519(carrier, fs.Arg(1), seed)
	if err != nil {
		fmt.Fprintf(errOut, "sign: %v\n", err)
		return 1
	}
	if *outPath == "" {
		*outPath = path
	}
	if err := os.WriteFile(*outPath, rewritten, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", *outPath, err)
		return 1
	}
	fmt.Fprintf(errOut, "Signer-Key: %s\n", keys.GenerateSignerKeyFromSeed(seed))
	fmt.Fprintf(out, "%s\n", *outPath)
	return 0
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(errOut, "usage: stegpng verify <file> <chunk-type>")
		return 2
	}
	carrier, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read carrier: %v\n", err)
		return 1
	}
	rec, err := stego.VerifySignature(carrier, fs.Arg(1))
	if err != nil {
		fmt.Fprintf(errOut, "verify: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "OK %s (%s)\n", rec.SignerKey, rec.HashAlg)
	return 0
}

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "init":
		return cmdKeyInit(args[1:], out, errOut)
	case "derive":
		return cmdKeyDerive(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "export":
		return cmdKeyExport(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "stegpng key: minimal local key management (KMS-lite)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  stegpng key init --name <name> [--seed-hex <64hex>] [--force]")
	fmt.Fprintln(w, "  stegpng key derive --from <name> --role <role> [--force]")
	fmt.Fprintln(w, "  stegpng key list")
	fmt.Fprintln(w, "  stegpng key export --name <name> [--role <role>]")
}

func cmdKeyInit(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key init", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var seedHex string
	var force bool

	fs.StringVar(&name, "name", "", "Key name (directory under ~/.stegpng/keys)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional ed25519 seed as 64 hex chars (for reproducible demos)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckKeyName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}

	var seed []byte
	if seedHex != "" {
		var derr error
		seed, derr = keys.ParseSeedHex(seedHex)
		if derr != nil {
			fmt.Fprintf(errOut, "invalid --seed-hex: %v\n", derr)
			return 2
		}
	} else {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			fmt.Fprintf(errOut, "rand: %v\n", err)
			return 1
		}
	}

	signerKey, rootPath, err := ks.InitializeRootKey(name, seed, force)
	if err != nil {
		fmt.Fprintf(errOut, "write key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created root key: %s\n", signerKey)
	fmt.Fprintf(out, "Stored at: %s\n", rootPath)
	return 0
}

func cmdKeyDerive(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key derive", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var from string
	var role string
	var force bool

	fs.StringVar(&from, "from", "", "Root key name")
	fs.StringVar(&role, "role", "", "Role identifier (e.g. author, courier)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if from == "" {
		fmt.Fprintln(errOut, "missing --from")
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	if err := keys.CheckKeyName(from); err != nil {
		fmt.Fprintf(errOut, "invalid --from: %v\n", err)
		return 2
	}
	if err := keys.CheckRole(role); err != nil {
		fmt.Fprintf(errOut, "invalid --role: %v\n", err)
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	signerKey, rolePath, err := ks.DeriveKeyFromRole(from, role, force)
	if err != nil {
		fmt.Fprintf(errOut, "derive role key: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Created role key: %s\n", signerKey)
	fmt.Fprintf(out, "Stored at: %s\n", rolePath)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	entries, err := ks.ListKeys()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s\n", e.Identifier)
		for _, r := range e.Permissions {
			fmt.Fprintf(out, "  - %s\n", r)
		}
	}
	return 0
}

func cmdKeyExport(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key export", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var name string
	var role string

	fs.StringVar(&name, "name", "", "Key name")
	fs.StringVar(&role, "role", "", "Optional role (if set, exports derived role key)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	if err := keys.CheckKeyName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	if role != "" {
		if err := keys.CheckRole(role); err != nil {
			fmt.Fprintf(errOut, "invalid --role: %v\n", err)
			return 2
		}
	}
	ks, err := keys.CreateKeyStore("")
	if err != nil {
		fmt.Fprintf(errOut, "keys: %v\n", err)
		return 1
	}
	signerKey, err := ks.ExportKey(name, role)
	if err != nil {
		fmt.Fprintf(errOut, "export key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, signerKey)
	return 0
}

func cmdStore(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: stegpng store <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: put, get, has")
		return 2
	}
	switch args[0] {
	case "put":
		return cmdStorePut(args[1:], out, errOut)
	case "get":
		return cmdStoreGet(args[1:], out, errOut)
	case "has":
		return cmdStoreHas(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown store subcommand: %s\n", args[0])
		return 2
	}
}

func dialStore(target string, errOut io.Writer) (*grpcstore.Client, int) {
	if target == "" {
		fmt.Fprintln(errOut, "missing --target")
		return nil, 2
	}
	client, err := grpcstore.Dial(target, grpcstore.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		fmt.Fprintf(errOut, "dial %s: %v\n", target, err)
		return nil, 1
	}
	client.Timeout = 30 * time.Second
	return client, 0
}

func cmdStorePut(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store put", flag.ContinueOnError)
	fs.SetOutput(errOut)
	target := fs.String("target", "127.0.0.1:7777", "carrier-store daemon address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: stegpng store put --target <addr> <file>")
		return 2
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", fs.Arg(0), err)
		return 1
	}
	client, code := dialStore(*target, errOut)
	if client == nil {
		return code
	}
	defer client.Close()

	id, err := client.Put(b)
	if err != nil {
		fmt.Fprintf(errOut, "put: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, id.String())
	return 0
}

func cmdStoreGet(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store get", flag.ContinueOnError)
	fs.SetOutput(errOut)
	target := fs.String("target", "127.0.0.1:7777", "carrier-store daemon address")
	outPath := fs.String("o", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: stegpng store get --target <addr> [-o <file>] <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}
	client, code := dialStore(*target, errOut)
	if client == nil {
		return code
	}
	defer client.Close()

	b, err := client.Get(id)
	if err != nil {
		fmt.Fprintf(errOut, "get: %v\n", err)
		return 1
	}
	if *outPath == "" {
		_, _ = out.Write(b)
		return 0
	}
	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", *outPath, err)
		return 1
	}
	return 0
}

func cmdStoreHas(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store has", flag.ContinueOnError)
	fs.SetOutput(errOut)
	target := fs.String("target", "127.0.0.1:7777", "carrier-store daemon address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: stegpng store has --target <addr> <cid>")
		return 2
	}
	id, err := cid.Decode(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid cid: %v\n", err)
		return 2
	}
	client, code := dialStore(*target, errOut)
	if client == nil {
		return code
	}
	defer client.Close()

	if client.Has(id) {
		fmt.Fprintln(out, "true")
		return 0
	}
	fmt.Fprintln(out, "false")
	return 1
}
