package utils

import "golang.org/x/crypto/bcrypt"

// Hasher hashes passwords with a fixed bcrypt cost.
type Hasher struct {
	Cost int
}

// HashPassword hashes a given password using bcrypt.
func (h Hasher) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with its hashed version.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
