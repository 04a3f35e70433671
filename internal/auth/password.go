package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword generates a salted bcrypt hash for password. It errors if the
// password is longer than 72 bytes.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// ComparePassword returns an error if password does not resolve to hash.
func ComparePassword(password string, hash []byte) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
