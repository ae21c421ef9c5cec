package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const codeDigits = 6

var codeUpperBound = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random 6-digit verification code
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeUpperBound)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// CodeHasher hashes verification codes so they are never stored in clear text
type CodeHasher struct {
	cost int
}

// NewCodeHasher creates a hasher; a cost outside bcrypt's range falls back to the default
func NewCodeHasher(cost int) *CodeHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CodeHasher{cost: cost}
}

func (h *CodeHasher) Hash(code string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash code: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether code corresponds to hash
func (h *CodeHasher) Matches(hash, code string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
