package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Ed25519 key and signature sizes, re-exported for callers that
// validate wire input.
const (
	PublicKeySize  = ed25519.PublicKeySize
	SignatureSize  = ed25519.SignatureSize
	PrivateKeySeed = ed25519.SeedSize
)

// Signer signs command hashes with an Ed25519 private key.
type Signer interface {
	// Sign produces an Ed25519 signature over a 32-byte command hash.
	Sign(hash []byte) ([]byte, error)
	// PublicKey returns the 32-byte public key.
	PublicKey() []byte
}

// PrivateKey wraps an Ed25519 private key.
type PrivateKey struct {
	key ed25519.PrivateKey
}

// GenerateKey creates a new random Ed25519 private key.
func GenerateKey() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: priv}, nil
}

// PrivateKeyFromSeed creates a PrivateKey from a 32-byte seed.
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign produces an Ed25519 signature over a 32-byte command hash.
func (pk *PrivateKey) Sign(hash []byte) ([]byte, error) {
	if len(hash) != HashSize {
		return nil, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(hash))
	}
	return ed25519.Sign(pk.key, hash), nil
}

// PublicKey returns the 32-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.Public().(ed25519.PublicKey)
}

// Seed returns the 32-byte private key seed.
func (pk *PrivateKey) Seed() []byte {
	return pk.key.Seed()
}

// Zero wipes the private key material.
func (pk *PrivateKey) Zero() {
	Zero(pk.key)
}

// VerifySignature checks an Ed25519 signature against a 32-byte hash
// and a 32-byte public key. Returns false on any error.
func VerifySignature(hash, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), hash, signature)
}

// Zero overwrites a byte slice to clear sensitive key material.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
