// Package users holds the user model and password hashing helpers. The
// service only ever sees transient copies of user records; durable storage
// belongs to the configured Repo implementation.
package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id,omitempty"`    // Unique identifier (UUID)
	Email        string    `json:"email,omitempty"` // Unique, case-sensitive as stored
	PasswordHash string    `json:"-"`               // Bcrypt digest - never serialize
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// HashPassword produces a salted bcrypt digest of the plaintext. DefaultCost
// keeps verification in the tens of milliseconds.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
