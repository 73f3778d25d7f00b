package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCurrency is used when a business has no configured currency.
const DefaultCurrency = "EUR"

// Business represents a business owned by a user. Quotes, invoices, clients,
// projects and business accounts are all scoped to exactly one business.
type Business struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Currency  string // ISO 4217 code; empty means DefaultCurrency
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolvedCurrency returns the configured currency, falling back to EUR.
func (b *Business) ResolvedCurrency() string {
	if b.Currency == "" {
		return DefaultCurrency
	}
	return b.Currency
}

// Client represents a customer of a business, referenced by invoices.
type Client struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
