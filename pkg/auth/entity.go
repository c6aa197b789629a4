package auth

import "time"

// User is a domain entity representing a registered business account.
// BusinessID is minted once at registration and scopes every lead the
// account owns; it never changes afterwards.
type User struct {
	ID           string
	Email        string
	BusinessName string
	BusinessID   string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
