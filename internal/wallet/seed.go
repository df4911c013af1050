package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// SeedFromMnemonic derives a 512-bit seed from a recovery phrase using
// PBKDF2-SHA512 as specified in BIP-39. The passphrase is always empty:
// the wallet password enters later, at root-key derivation.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	normalized := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(mnemonic))), " ")
	if err := ValidateMnemonic(normalized); err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(normalized, "")
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return seed, nil
}
