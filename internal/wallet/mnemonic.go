// Package wallet implements recovery phrases, password-bound key
// derivation, and encrypted key storage.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 12-word recovery phrases.
const MnemonicEntropyBits = 128

// MnemonicWordCount is the number of words in a recovery phrase.
const MnemonicWordCount = 12

// Mnemonic validation failures. ValidateMnemonic wraps these so callers
// can tell the user which rule was broken.
var (
	ErrMnemonicWordCount = errors.New("recovery phrase must be 12 words")
	ErrMnemonicWord      = errors.New("word not in the BIP-39 word list")
	ErrMnemonicChecksum  = errors.New("recovery phrase checksum is invalid")
)

// GenerateEntropy returns 16 bytes from the OS entropy source.
func GenerateEntropy() ([]byte, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return nil, fmt.Errorf("generate entropy: %w", err)
	}
	return entropy, nil
}

// MnemonicFromEntropy converts 16 bytes of entropy to a 12-word BIP-39
// recovery phrase. Deterministic.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	if len(entropy)*8 != MnemonicEntropyBits {
		return "", fmt.Errorf("entropy must be %d bits, got %d", MnemonicEntropyBits, len(entropy)*8)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// NewMnemonic creates a new 12-word recovery phrase from fresh entropy.
func NewMnemonic() (string, error) {
	entropy, err := GenerateEntropy()
	if err != nil {
		return "", err
	}
	return MnemonicFromEntropy(entropy)
}

// ValidateMnemonic checks a recovery phrase and reports the first broken
// rule: wrong word count, a word outside the dictionary (the error names
// it), or a bad checksum.
func ValidateMnemonic(mnemonic string) error {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(mnemonic)))
	if len(words) != MnemonicWordCount {
		return fmt.Errorf("%w: got %d", ErrMnemonicWordCount, len(words))
	}
	for _, w := range words {
		if _, ok := bip39.GetWordIndex(w); !ok {
			return fmt.Errorf("%w: %q", ErrMnemonicWord, w)
		}
	}
	if !bip39.IsMnemonicValid(strings.Join(words, " ")) {
		return ErrMnemonicChecksum
	}
	return nil
}
