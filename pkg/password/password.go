package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts, in bytes not characters
const MaxBytes = 72

// ErrTooLong is returned by Hash for passwords longer than MaxBytes
var ErrTooLong = errors.New("password exceeds 72 bytes")

// Hash hashes a plaintext password with bcrypt. The salt is random, so two
// hashes of the same password differ; use Verify to compare.
func Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches hash. A mismatch is not an error;
// only a malformed hash is. A password Hash would refuse never matches.
func Verify(plain, hash string) (bool, error) {
	if len(plain) > MaxBytes {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
