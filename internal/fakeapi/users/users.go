// Package users holds the student accounts known to the fake API.
package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Student struct {
	ID           string    `json:"id,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // never serialised
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	DateJoined   time.Time `json:"dateJoined,omitempty"`
	LastLogin    time.Time `json:"lastLogin,omitempty"`

	Verified   bool `json:"isVerified"`
	HasProfile bool `json:"hasProfile"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword reports whether password matches the stored hash.
func (s *Student) CheckPassword(password string) bool {
	return CheckPasswordHash(password, s.PasswordHash)
}
