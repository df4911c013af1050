// Package crypto provides the cryptographic primitives the Pact API
// expects: BLAKE2b-256 command hashing and Ed25519 signatures.
package crypto

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// HashSize is the length of a command hash in bytes.
const HashSize = 32

// Hash is a BLAKE2b-256 digest.
type Hash [HashSize]byte

// CommandHash computes the BLAKE2b-256 hash of the stringified command
// text. This is the message each signer signs and the value carried in
// the envelope's "hash" field.
func CommandHash(data []byte) Hash {
	return blake2b.Sum256(data)
}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// HashFromHex parses a 64-character hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("decode hash: %w", err)
	}
	if len(b) != HashSize {
		return h, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}
