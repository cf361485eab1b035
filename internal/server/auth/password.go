// Package auth implements password hashing and verification with bcrypt.
package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt can hash without
// truncation.
const MaxPasswordLength = 72

// generateFromPassword is a seam for simulating hashing failures in tests.
var generateFromPassword = bcrypt.GenerateFromPassword

// HashPassword returns a salted bcrypt hash of plain using cost.
// Every call draws a fresh salt, so two hashes of the same password differ.
func HashPassword(plain []byte, cost int) (string, error) {
	if len(plain) > MaxPasswordLength {
		return "", fmt.Errorf("%w: password longer than %d bytes", common.ErrorValidation, MaxPasswordLength)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	hash, err := generateFromPassword(plain, cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches hash.
// A mismatch is (false, nil); a hash bcrypt cannot parse is (false, err).
func VerifyPassword(plain []byte, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), plain)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
}
