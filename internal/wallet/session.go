package wallet

import (
	"encoding/hex"
	"fmt"

	"github.com/kadena-community/pactwallet/pkg/crypto"
	"github.com/kadena-community/pactwallet/pkg/pact"
)

// Session holds the unlocked key material for one wallet. It is created
// at unlock and destroyed at lock; components that sign take the keyring
// snapshot from here instead of reaching into ambient state.
type Session struct {
	walletName string
	root       *RootKey
	keyring    *pact.Keyring
}

// Unlock decrypts a wallet, re-derives the root key from the password,
// and materializes the keyring from the stored key entries.
func Unlock(ks *Keystore, walletName string, password string) (*Session, error) {
	seed, err := ks.LoadSeed(walletName, []byte(password))
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(seed)

	root, err := DeriveRootKey(seed, password)
	if err != nil {
		return nil, err
	}

	entries, err := ks.ListKeys(walletName)
	if err != nil {
		root.Zero()
		return nil, err
	}

	ring := pact.NewKeyring()
	for _, entry := range entries {
		pair, err := materialize(root, entry)
		if err != nil {
			root.Zero()
			return nil, fmt.Errorf("key %q: %w", entry.Name, err)
		}
		if err := ring.Add(entry.Name, pair); err != nil {
			root.Zero()
			return nil, err
		}
	}

	return &Session{walletName: walletName, root: root, keyring: ring}, nil
}

// materialize rebuilds a keypair from its keystore entry. Watch-only
// entries yield a pair without a private key.
func materialize(root *RootKey, entry KeyEntry) (pact.KeyPair, error) {
	if entry.WatchOnly {
		pub, err := hex.DecodeString(entry.PublicKey)
		if err != nil {
			return pact.KeyPair{}, fmt.Errorf("decode public key: %w", err)
		}
		if len(pub) != crypto.PublicKeySize {
			return pact.KeyPair{}, fmt.Errorf("public key must be %d bytes, got %d", crypto.PublicKeySize, len(pub))
		}
		return pact.KeyPair{PublicKey: pub}, nil
	}

	child, err := root.DeriveChild(entry.Index)
	if err != nil {
		return pact.KeyPair{}, err
	}
	pair, err := child.SigningPair()
	if err != nil {
		return pact.KeyPair{}, err
	}
	if entry.PublicKey != "" && pair.PublicKeyHex() != entry.PublicKey {
		return pact.KeyPair{}, fmt.Errorf("derived key does not match stored public key")
	}
	return pair, nil
}

// WalletName returns the name of the unlocked wallet.
func (s *Session) WalletName() string {
	return s.walletName
}

// Keyring returns the unlocked keyring. Callers treat it as a read-only
// snapshot; in-flight submissions are unaffected by later key changes.
func (s *Session) Keyring() *pact.Keyring {
	return s.keyring
}

// DeriveKey derives the signing pair at the given hardened index. Used
// when adding a new named key to the wallet.
func (s *Session) DeriveKey(index uint32) (pact.KeyPair, error) {
	child, err := s.root.DeriveChild(index)
	if err != nil {
		return pact.KeyPair{}, err
	}
	return child.SigningPair()
}

// Close wipes the session's key material.
func (s *Session) Close() {
	if s.root != nil {
		s.root.Zero()
		s.root = nil
	}
	s.keyring = nil
}
