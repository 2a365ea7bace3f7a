package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 10 keeps a single hash around 50-100ms on current hardware.
// Raising it slows every registration and login by the same factor.
const cost = 10

// Hash derives a salted one-way hash from a plaintext password. The salt
// is embedded in the returned value, so no separate salt storage is needed
// for later verification.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. A mismatched
// password returns (false, nil); only a malformed hash produces an error.
func Verify(plain, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("compare password: %w", err)
}
