// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single store account.
// Credentials are not stored here; they live in Authentication records so
// that identity concerns stay composed rather than inherited.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // The unique login name.
	Email        string    // The user's primary contact email.
	FirstName    string
	LastName     string
	Age          *int    // Optional; validated to the 15..100 range at the boundary.
	PhoneNumber  *string // Optional, E.164 formatted.
	Status       Status  // Loyalty tier driving the cart discount.
	RegisterDate time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the display name used by nested serializations,
// e.g. rating and review author fields.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}

	return u.FirstName + " " + u.LastName
}
