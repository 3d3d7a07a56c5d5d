// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleReader Role = "reader"
	RoleAuthor Role = "author"
	RoleAdmin  Role = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return true
	}
	return false
}

// Image is a stored image reference: the public URL plus the backend
// storage key needed to delete or replace it later.
type Image struct {
	URL string `json:"url,omitempty"`
	Key string `json:"storageId,omitempty"`
}

// Empty reports whether no image is set.
func (i Image) Empty() bool {
	return i.URL == "" && i.Key == ""
}

// User represents a registered account with credentials and a role.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Role         Role      `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	Website      string    `json:"website,omitempty"`
	Avatar       Image     `json:"avatar"`

	// Password-reset state. The raw token is never stored; only its
	// SHA-256 hex digest, compared by digest on reset.
	ResetTokenHash    *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAuthor returns true if the user may create posts.
func (u *User) CanAuthor() bool {
	return u.Role == RoleAuthor || u.Role == RoleAdmin
}
