// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies how an Authentication record was established.
type ProviderType string

const (
	// ProviderTypeEmail is the username/password credential provider.
	ProviderTypeEmail ProviderType = "email"
)

// Authentication represents a single login credential for a user. The
// password hash is only populated for the email provider.
type Authentication struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Provider       ProviderType
	ProviderUserID string // The login identifier at the provider, the username for email.
	PasswordHash   string // bcrypt hash, email provider only.
	CreatedAt      time.Time
}

// RefreshToken represents a long-lived, authorized session. Only a SHA-256
// hash of the raw token is stored.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session has passed its expiry.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
