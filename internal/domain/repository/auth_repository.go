// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAuthNotFound is returned when no authentication record matches.
var ErrAuthNotFound = errors.New("authentication not found")

// AuthRepository defines operations for credential persistence.
type AuthRepository interface {
	// FindAuthentication retrieves a credential by provider and the
	// provider-scoped user identifier (the username for the email provider).
	FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error)

	// CreateAuthentication persists a new credential for a user.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// UpdateAuthentication modifies an existing credential, e.g. on password change.
	UpdateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// DeleteAuthentication removes a credential by its ID.
	DeleteAuthentication(ctx context.Context, id uuid.UUID) error
}
