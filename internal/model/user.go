package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered account
// The password is only ever held as a bcrypt hash
type User struct {
	ID           UserID
	Username     string // login username (immutable, case-sensitive)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
