package users

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleType is a catalog backend role. Role names are the upper case strings
// the backend returns in the auth payload.
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN" // Can add, edit and remove catalog movies
	RoleUser  RoleType = "USER"  // Regular account
)

// User is an account record held by the catalog backend.
type User struct {
	ID           int64      `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never serialize
	Roles        []RoleType `json:"roles"`
	Movies       []int64    `json:"movies,omitempty"` // ids of movies saved to the account
	DateJoined   time.Time  `json:"dateJoined,omitempty"`
	LastLogin    time.Time  `json:"lastLogin,omitempty"`
}

// ValidatePassword checks the minimum the backend accepts for a new account.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CheckPassword checks a password against the user's hash
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.PasswordHash)
}

// HasRole reports whether the user holds role
func (u *User) HasRole(role RoleType) bool {
	return slices.Contains(u.Roles, role)
}

// RoleNames returns the roles as plain strings, as sent over the wire
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r))
	}
	return names
}
