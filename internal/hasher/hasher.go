package hasher

import (
	"fmt"

	"github.com/haguru/shisui/internal/interfaces"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor the identity platform expects for
// imported password hashes.
const Cost = 10

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the default import cost.
func NewBcryptHasher() interfaces.Hasher {
	return &BcryptHasher{cost: Cost}
}

// Hash returns a salted bcrypt hash of the given password. bcrypt
// generates a fresh random salt on every call, so two calls with the
// same input produce different outputs. Empty input is rejected rather
// than hashed.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%s", ErrEmptyPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	return string(hashed), nil
}
