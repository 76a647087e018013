package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered SafeShare account
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Roles        []string  `json:"roles" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the created-user payload returned by signup
type UserSummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Summary converts a user to its wire representation
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Roles: u.Roles,
	}
}

// ExistenceResult is the well-typed discriminant for the check-user operation
type ExistenceResult int

const (
	// UserNotFound means no account is registered for the email
	UserNotFound ExistenceResult = iota
	// UserExists means an account is registered for the email
	UserExists
)

// Exists reports the result as the boolean wire payload
func (r ExistenceResult) Exists() bool {
	return r == UserExists
}
