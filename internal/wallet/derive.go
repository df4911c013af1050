package wallet

import (
	"crypto/sha512"
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"golang.org/x/crypto/pbkdf2"

	"github.com/kadena-community/pactwallet/pkg/crypto"
	"github.com/kadena-community/pactwallet/pkg/pact"
)

// pbkdf2Rounds matches the BIP-39 iteration count; the password is
// stretched against the seed before the BIP-32 master-key HMAC.
const pbkdf2Rounds = 2048

// RootKey is the wallet's extended private key, derived from the BIP-39
// seed and the wallet password. Identical (seed, password) inputs always
// reproduce the identical key; that is what makes recovery work.
type RootKey struct {
	key *bip32.Key
}

// DeriveRootKey binds the password to the seed with PBKDF2-SHA512 and
// builds a BIP-32 master key from the stretched bytes. The password must
// already have passed ValidatePassword.
func DeriveRootKey(seed []byte, password string) (*RootKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	stretched := pbkdf2.Key([]byte(password), seed, pbkdf2Rounds, SeedSize, sha512.New)
	master, err := bip32.NewMasterKey(stretched)
	crypto.Zero(stretched)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &RootKey{key: master}, nil
}

// DeriveChild derives the hardened child key at the given index.
func (k *RootKey) DeriveChild(index uint32) (*RootKey, error) {
	child, err := k.key.NewChildKey(bip32.FirstHardenedChild + index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &RootKey{key: child}, nil
}

// secretBytes returns the raw 32-byte private scalar.
func (k *RootKey) secretBytes() []byte {
	raw := k.key.Key
	// bip32 Key.Key is 33 bytes with a leading 0x00 for private keys.
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// SigningKey returns the Ed25519 signing key for this node of the tree.
func (k *RootKey) SigningKey() (*crypto.PrivateKey, error) {
	secret := k.secretBytes()
	if len(secret) != crypto.PrivateKeySeed {
		return nil, fmt.Errorf("key material must be %d bytes, got %d", crypto.PrivateKeySeed, len(secret))
	}
	return crypto.PrivateKeyFromSeed(secret)
}

// SigningPair returns the pact keypair for this node of the tree.
func (k *RootKey) SigningPair() (pact.KeyPair, error) {
	priv, err := k.SigningKey()
	if err != nil {
		return pact.KeyPair{}, err
	}
	return pact.KeyPair{PublicKey: priv.PublicKey(), PrivateKey: priv}, nil
}

// Serialize returns the base58 extended-key encoding.
func (k *RootKey) Serialize() string {
	return k.key.B58Serialize()
}

// Zero wipes the key material.
func (k *RootKey) Zero() {
	crypto.Zero(k.key.Key)
	crypto.Zero(k.key.ChainCode)
}
