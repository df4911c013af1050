// pactwallet is a command-line wallet for Pact backends: recovery
// phrases, password-bound keys, and signed exec submissions.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/kadena-community/pactwallet/config"
	"github.com/kadena-community/pactwallet/internal/directory"
	"github.com/kadena-community/pactwallet/internal/log"
	"github.com/kadena-community/pactwallet/internal/storage"
	"github.com/kadena-community/pactwallet/internal/wallet"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Parse global flags that appear before the subcommand.
	network := ""
	dataDir := ""

	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--network" && len(args) > 1:
			network = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			network = args[0][len("--network="):]
			args = args[1:]
		case args[0] == "--datadir" && len(args) > 1:
			dataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			dataDir = args[0][len("--datadir="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg := loadConfig(network, dataDir)
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatalf("init logging: %v", err)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "init":
		cmdInit(cfg, cmdArgs)
	case "restore":
		cmdRestore(cfg, cmdArgs)
	case "keys":
		cmdKeys(cfg, cmdArgs)
	case "send":
		cmdSend(cfg, cmdArgs)
	case "servers":
		cmdServers(cfg)
	case "modules":
		cmdModules(cfg, cmdArgs)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `pactwallet - wallet for Pact backends

Usage:
  pactwallet [--network mainnet|testnet|devnet] [--datadir DIR] <command>

Commands:
  init [name]              create a wallet from a fresh recovery phrase
  restore [name]           recreate a wallet from an existing phrase
  keys list [wallet]       list the named keys in a wallet
  keys add <name>          derive and store the next key
  keys watch <name> <pub>  add a watch-only public key
  send <code>              sign and submit an exec command
  servers                  resolve and print the known backends
  modules [backend]        show discovered modules per backend

Send flags:
  --wallet NAME      wallet to sign with (default "main")
  --backend NAME     backend name from the server list (required)
  --data JSON        exec data payload (default {})
  --sign k1,k2       key names to sign with (default: all signing keys)
  --strict           fail instead of skipping watch-only signer names
`)
}

// loadConfig builds the effective config: network defaults, then the
// conf file, then command-line overrides.
func loadConfig(network, dataDir string) *config.Config {
	net := config.Mainnet
	if network != "" {
		net = config.NetworkType(network)
	}
	cfg := config.Default(net)
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	values, err := config.LoadFile(cfg.ConfigFile())
	if err != nil {
		fatalf("read config file: %v", err)
	}
	if err := config.ApplyFileConfig(cfg, values); err != nil {
		fatalf("apply config file: %v", err)
	}

	// Command-line flags win over the file.
	if network != "" {
		cfg.Network = config.NetworkType(network)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	if err := config.Validate(cfg); err != nil {
		fatalf("invalid config: %v", err)
	}
	return cfg
}

// newDirectory wires the backend directory from config: explicit file,
// else the bundled list, with the module cache on disk.
func newDirectory(cfg *config.Config) (*directory.Directory, func()) {
	static := cfg.StaticServerList()
	if cfg.Directory.ServerListFile != "" {
		data, err := os.ReadFile(cfg.Directory.ServerListFile)
		if err != nil {
			fatalf("read server list: %v", err)
		}
		static = string(data)
	}

	db, err := storage.NewBadger(cfg.CacheDir())
	if err != nil {
		log.Storage.Warn().Err(err).Msg("module cache unavailable, using memory")
		d := directory.New(directory.Options{
			StaticList: static,
			RemoteURL:  cfg.Directory.ServerListURL,
		})
		return d, func() {}
	}

	d := directory.New(directory.Options{
		StaticList: static,
		RemoteURL:  cfg.Directory.ServerListURL,
		DB:         db,
	})
	return d, func() { db.Close() }
}

func openKeystore(cfg *config.Config) *wallet.Keystore {
	ks, err := wallet.NewKeystore(cfg.KeystoreDir())
	if err != nil {
		fatalf("open keystore: %v", err)
	}
	return ks
}

// promptPassword reads a password without echo.
func promptPassword(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		fatalf("read password: %v", err)
	}
	return string(pw)
}

// promptNewPassword reads and validates a fresh wallet password.
func promptNewPassword() string {
	for {
		pw := promptPassword("New wallet password (min 10 characters): ")
		confirm := promptPassword("Confirm password: ")
		if err := wallet.ValidatePassword(pw, confirm); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			continue
		}
		return pw
	}
}

func promptLine(prompt string) string {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		fatalf("read input: %v", err)
	}
	return strings.TrimSpace(line)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
