package models

import (
	"time"
)

// User represents a registered user of the Crop Portal.
// The email is the unique key; it is stored and compared exactly as given,
// with no case normalization.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" validate:"required,email"`
	Name         string    `json:"name" db:"name" validate:"required"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// NewUser creates a new User instance with the given email and display name.
// The password hash is populated later during registration.
func NewUser(email, name string) *User {
	return &User{
		Email:     email,
		Name:      name,
		CreatedAt: time.Now(),
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information from the User object when sending to clients.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	return &sanitized
}

// Summary returns the identity fields exposed in auth responses.
func (u *User) Summary() map[string]string {
	return map[string]string{
		"email": u.Email,
		"name":  u.Name,
	}
}

// UserRegistration represents the data required for user registration.
type UserRegistration struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserCredentials represents the login credentials provided by a user.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
