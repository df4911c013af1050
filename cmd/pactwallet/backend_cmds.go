package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kadena-community/pactwallet/config"
	"github.com/kadena-community/pactwallet/internal/client"
	"github.com/kadena-community/pactwallet/internal/wallet"
	"github.com/kadena-community/pactwallet/pkg/pact"
)

// cmdServers resolves and prints the backend set.
func cmdServers(cfg *config.Config) {
	dir, closeDir := newDirectory(cfg)
	defer closeDir()

	backends, err := dir.Resolve(context.Background())
	if err != nil {
		fatalf("resolve backends: %v", err)
	}
	for _, name := range dir.Names() {
		fmt.Printf("%-12s %s\n", name, backends[name])
	}
}

// cmdModules discovers and prints the module lists per backend.
func cmdModules(cfg *config.Config, args []string) {
	dir, closeDir := newDirectory(cfg)
	defer closeDir()

	if _, err := dir.Resolve(context.Background()); err != nil {
		fatalf("resolve backends: %v", err)
	}

	ctx := context.Background()
	if len(args) > 0 {
		// Single-backend refresh on demand.
		if err := dir.Refresh(ctx, args[0]); err != nil {
			fatalf("refresh %q: %v", args[0], err)
		}
	} else if failures := dir.DiscoverModules(ctx); len(failures) > 0 {
		for name, err := range failures {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		}
	}

	for _, name := range dir.Names() {
		modules, ok := dir.Modules(name)
		if !ok {
			fmt.Printf("%-12s (unknown)\n", name)
			continue
		}
		fmt.Printf("%-12s %s\n", name, strings.Join(modules, " "))
	}
}

// cmdSend signs an exec command and submits it: one /send, one /listen.
func cmdSend(cfg *config.Config, args []string) {
	walletName := defaultWalletName
	backendName := ""
	dataJSON := "{}"
	signWith := ""
	strict := false
	var code string

	for len(args) > 0 {
		switch {
		case args[0] == "--wallet" && len(args) > 1:
			walletName = args[1]
			args = args[2:]
		case args[0] == "--backend" && len(args) > 1:
			backendName = args[1]
			args = args[2:]
		case args[0] == "--data" && len(args) > 1:
			dataJSON = args[1]
			args = args[2:]
		case args[0] == "--sign" && len(args) > 1:
			signWith = args[1]
			args = args[2:]
		case args[0] == "--strict":
			strict = true
			args = args[1:]
		default:
			if code != "" {
				fatalf("unexpected argument %q", args[0])
			}
			code = args[0]
			args = args[1:]
		}
	}
	if code == "" {
		fatalf("usage: pactwallet send [flags] <pact-code>")
	}
	if backendName == "" {
		fatalf("--backend is required")
	}

	data := pact.NewObject()
	if err := json.Unmarshal([]byte(dataJSON), data); err != nil {
		fatalf("parse --data: %v", err)
	}

	dir, closeDir := newDirectory(cfg)
	defer closeDir()
	if _, err := dir.Resolve(context.Background()); err != nil {
		fatalf("resolve backends: %v", err)
	}
	uri, ok := dir.URI(backendName)
	if !ok {
		fatalf("unknown backend %q (try: pactwallet servers)", backendName)
	}

	ks := openKeystore(cfg)
	password := promptPassword("Wallet password: ")
	session, err := wallet.Unlock(ks, walletName, password)
	if err != nil {
		fatalf("unlock wallet: %v", err)
	}
	defer session.Close()

	ring := session.Keyring()
	names := ring.Names()
	if signWith != "" {
		names = strings.Split(signWith, ",")
	}

	policy := pact.SkipMissing
	if strict {
		policy = pact.RejectMissing
	}
	payload := pact.NewExecPayload(code, data, pact.Nonce())
	cmd, err := pact.SignCommand(ring, names, payload, policy)
	if err != nil {
		fatalf("sign command: %v", err)
	}

	// /send gets a deadline; /listen long-polls until the server answers.
	c := client.New(uri)
	sendCtx, cancel := context.WithTimeout(context.Background(), cfg.Wallet.SendTimeout)
	requestKey, err := c.Send(sendCtx, cmd)
	cancel()
	if err != nil {
		fatalBackend(err)
	}
	fmt.Fprintf(os.Stderr, "request key: %s\n", requestKey)

	result, err := c.Listen(context.Background(), requestKey)
	if err != nil {
		fatalBackend(err)
	}
	if !result.IsSuccess() {
		fatalf("ERROR: %s", result.FailureMessage())
	}

	pretty, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		fmt.Println(string(result.Data))
		return
	}
	fmt.Println(string(pretty))
}

// fatalBackend prints a backend error with its user-facing rendering.
func fatalBackend(err error) {
	var be *client.BackendError
	if errors.As(err, &be) {
		fatalf("%s", be.UserMessage())
	}
	fatalf("ERROR: %v", err)
}
