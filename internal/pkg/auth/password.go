package auth

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength matches the identity backend's default policy.
	MinPasswordLength = 6

	bcryptCost = 12
)

// PasswordAcceptable reports whether password meets the length policy.
// Length is counted in runes.
func PasswordAcceptable(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// HashPassword returns the bcrypt hash stored in user_credentials.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
