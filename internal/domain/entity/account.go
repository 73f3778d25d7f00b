package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OwnerScope distinguishes personal accounts from business accounts.
type OwnerScope string

const (
	OwnerScopePersonal OwnerScope = "personal"
	OwnerScopeBusiness OwnerScope = "business"
)

// TransactionDirection represents the flow direction of a transaction.
type TransactionDirection string

const (
	DirectionIn  TransactionDirection = "in"
	DirectionOut TransactionDirection = "out"
)

// Account represents a money account (bank account, cash, card) belonging to a
// user directly or through one of their businesses.
type Account struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BusinessID      *uuid.UUID // nil for personal accounts
	Name            string
	Scope           OwnerScope
	IsActive        bool
	IncludeInBudget bool // inactive or budget-excluded accounts are ignored by projections
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Transaction represents a single money movement on an account.
// Amount is always non-negative; the direction carries the sign.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Direction   TransactionDirection
	Amount      decimal.Decimal
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
