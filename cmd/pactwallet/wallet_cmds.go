package main

import (
	"fmt"
	"os"

	"github.com/kadena-community/pactwallet/config"
	"github.com/kadena-community/pactwallet/internal/wallet"
	"github.com/kadena-community/pactwallet/pkg/crypto"
)

const defaultWalletName = "main"

func walletNameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultWalletName
}

// cmdInit creates a wallet from a fresh recovery phrase.
func cmdInit(cfg *config.Config, args []string) {
	name := walletNameArg(args)
	ks := openKeystore(cfg)

	mnemonic, err := wallet.NewMnemonic()
	if err != nil {
		fatalf("generate recovery phrase: %v", err)
	}

	fmt.Println("Your recovery phrase (write it down, it is shown once):")
	fmt.Println()
	fmt.Printf("  %s\n", mnemonic)
	fmt.Println()

	createWallet(ks, name, mnemonic)
}

// cmdRestore recreates a wallet from an existing recovery phrase.
func cmdRestore(cfg *config.Config, args []string) {
	name := walletNameArg(args)
	ks := openKeystore(cfg)

	mnemonic := promptLine("Recovery phrase (12 words): ")
	if err := wallet.ValidateMnemonic(mnemonic); err != nil {
		fatalf("invalid recovery phrase: %v", err)
	}

	createWallet(ks, name, mnemonic)
}

// createWallet derives the seed, encrypts it under a new password, and
// registers the first signing key.
func createWallet(ks *wallet.Keystore, name, mnemonic string) {
	seed, err := wallet.SeedFromMnemonic(mnemonic)
	if err != nil {
		fatalf("derive seed: %v", err)
	}
	defer crypto.Zero(seed)

	password := promptNewPassword()
	if err := ks.Create(name, seed, []byte(password), wallet.DefaultKDFParams()); err != nil {
		fatalf("create wallet: %v", err)
	}

	session, err := wallet.Unlock(ks, name, password)
	if err != nil {
		fatalf("unlock new wallet: %v", err)
	}
	defer session.Close()

	pair, err := session.DeriveKey(0)
	if err != nil {
		fatalf("derive first key: %v", err)
	}
	entry := wallet.KeyEntry{Name: name + "-0", PublicKey: pair.PublicKeyHex(), Index: 0}
	if err := ks.AddKey(name, entry); err != nil {
		fatalf("store first key: %v", err)
	}

	fmt.Printf("Wallet %q created.\n", name)
	fmt.Printf("First key %q: %s\n", entry.Name, entry.PublicKey)
}

// cmdKeys lists or adds wallet keys.
func cmdKeys(cfg *config.Config, args []string) {
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	ks := openKeystore(cfg)

	switch args[0] {
	case "list":
		name := walletNameArg(args[1:])
		entries, err := ks.ListKeys(name)
		if err != nil {
			fatalf("list keys: %v", err)
		}
		if len(entries) == 0 {
			fmt.Printf("wallet %q has no keys\n", name)
			return
		}
		for _, e := range entries {
			kind := "signing"
			if e.WatchOnly {
				kind = "watch-only"
			}
			fmt.Printf("%-20s %-10s %s\n", e.Name, kind, e.PublicKey)
		}

	case "add":
		if len(args) < 2 {
			fatalf("usage: pactwallet keys add <name> [wallet]")
		}
		keyName := args[1]
		walletName := walletNameArg(args[2:])

		password := promptPassword("Wallet password: ")
		session, err := wallet.Unlock(ks, walletName, password)
		if err != nil {
			fatalf("unlock wallet: %v", err)
		}
		defer session.Close()

		index, err := ks.NextKeyIndex(walletName)
		if err != nil {
			fatalf("next key index: %v", err)
		}
		pair, err := session.DeriveKey(index)
		if err != nil {
			fatalf("derive key: %v", err)
		}
		entry := wallet.KeyEntry{Name: keyName, PublicKey: pair.PublicKeyHex(), Index: index}
		if err := ks.AddKey(walletName, entry); err != nil {
			fatalf("store key: %v", err)
		}
		fmt.Printf("Key %q: %s\n", keyName, entry.PublicKey)

	case "watch":
		if len(args) < 3 {
			fatalf("usage: pactwallet keys watch <name> <public-key-hex> [wallet]")
		}
		entry := wallet.KeyEntry{Name: args[1], PublicKey: args[2], WatchOnly: true}
		walletName := walletNameArg(args[3:])
		if err := ks.AddKey(walletName, entry); err != nil {
			fatalf("store key: %v", err)
		}
		fmt.Printf("Watch-only key %q added.\n", entry.Name)

	default:
		fatalf("unknown keys subcommand %q", args[0])
	}
}
