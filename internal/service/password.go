package service

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errEmptyPassword = errors.New("password must not be empty")

// HashPassword returns a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errEmptyPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether the password matches the stored hash.
// A mismatch is not an error.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
