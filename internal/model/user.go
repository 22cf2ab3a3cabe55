package model

import "time"

// UserID uniquely identifies a staff account
type UserID string

// User represents a staff account that can manage transfers.
// The password hash never leaves the storage/auth layers.
type User struct {
	ID           UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
