// Package entity contains the core business objects of the project.
package entity

import "github.com/shopspring/decimal"

// Status represents a user's loyalty tier. The tier alone determines the
// cart discount; nothing else feeds into the discount computation.
type Status string

const (
	// StatusGold waives 75% of the cart subtotal.
	StatusGold Status = "gold"
	// StatusSilver waives 50% of the cart subtotal.
	StatusSilver Status = "silver"
	// StatusBronze waives 25% of the cart subtotal.
	StatusBronze Status = "bronze"
	// StatusSimple is the default tier with no discount.
	StatusSimple Status = "simple"
)

// Discount fractions are coarse constants. Changing a tier's discount means
// changing this table, not configuration.
var (
	discountGold   = decimal.New(75, -2) // 0.75
	discountSilver = decimal.New(50, -2) // 0.50
	discountBronze = decimal.New(25, -2) // 0.25
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a known tier.
func (s Status) IsValid() bool {
	switch s {
	case StatusGold, StatusSilver, StatusBronze, StatusSimple:
		return true
	default:
		return false
	}
}

// Discount returns the fraction of the subtotal waived for this tier.
// Unknown or empty tiers fail open to zero discount (full price), never
// to an error.
func (s Status) Discount() decimal.Decimal {
	switch s {
	case StatusGold:
		return discountGold
	case StatusSilver:
		return discountSilver
	case StatusBronze:
		return discountBronze
	default:
		return decimal.Zero
	}
}
