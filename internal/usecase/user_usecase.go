// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Age         *int
	PhoneNumber *string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// UpdateProfileInput carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Email       *string
	FirstName   *string
	LastName    *string
	Age         *int
	PhoneNumber *string
	Status      *string
}

// --- Output DTOs ---

// AuthOutput returns the authenticated user together with a fresh token pair.
type AuthOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// UserUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	// Register creates the account, its email credential and an initial
	// session in one transaction.
	Register(ctx context.Context, input RegisterUserInput) (*AuthOutput, error)

	// Login verifies the password and opens a new session.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Refresh rotates a valid refresh token into a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthOutput, error)

	// Logout ends the session identified by the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// GetProfile loads a user's account data.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// UpdateProfile applies the given profile changes.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)

	// DeleteAccount removes the account and everything hanging off it.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}
