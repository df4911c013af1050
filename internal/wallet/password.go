package wallet

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MinPasswordLength is the minimum wallet password length.
const MinPasswordLength = 10

// Password validation failures.
var (
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// ValidatePassword checks a new wallet password against its confirmation
// entry. Root-key derivation must never run on a password that fails here.
func ValidatePassword(password, confirm string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: need at least %d characters", ErrPasswordTooShort, MinPasswordLength)
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	return nil
}
