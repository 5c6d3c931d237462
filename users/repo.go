package users

import "time"

type UserRepo interface {
	// Create stores a new user, assigning its ID. Emails are unique.
	Create(user *User) error
	Upsert(user *User) error
	Delete(email string) error
	GetByEmail(email string) (*User, error)
	GetByID(id int64) (*User, error)
	List(offset, limit int) ([]*User, error)
	SetLastLogin(email string, at time.Time) error
}
