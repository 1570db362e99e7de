package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash stored in users.password.
func HashPassword(s string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hashed, nil
}

// ComparePassword reports a mismatch, or an unreadable stored hash, as
// ErrUnauthorized.
func ComparePassword(hashed string, normal string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(normal)); err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}
