package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with bcrypt.  A process-wide secret
// pepper is appended to the plaintext before hashing, so hashes are only
// verifiable by processes that share the same pepper.  The cost factor comes
// from configuration: low in dev/test, high in production.
type Hasher struct {
	pepper string
	cost   int
}

// NewHasher builds a Hasher from the configured pepper and bcrypt cost.
func NewHasher(pepper string, cost int) *Hasher {
	return &Hasher{pepper: pepper, cost: cost}
}

// Hash returns the bcrypt hash of the peppered plaintext.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password is required")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain+h.pepper), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare safely checks a plaintext candidate against a stored hash.
func (h *Hasher) Compare(candidate, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate+h.pepper)) == nil
}
