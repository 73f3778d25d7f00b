package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceItem represents a billable service offered by a business, referenced
// from invoice line items.
type ServiceItem struct {
	ID         uuid.UUID
	BusinessID uuid.UUID
	Name       string
	UnitPrice  decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Invoice represents an invoice issued by a business to a client.
// ClientID is nullable: invoices without a client are grouped under a
// synthetic "unknown client" bucket by the ranking insights.
type Invoice struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	ClientID    *uuid.UUID
	ProjectID   *uuid.UUID
	Number      string
	TotalAmount decimal.Decimal
	InvoiceDate time.Time
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Payments  []InvoicePayment
	LineItems []InvoiceLineItem
}

// InvoicePayment is a partial or full payment recorded against an invoice,
// with its own timestamp distinct from invoice issuance.
type InvoicePayment struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	PaidAt    time.Time
	CreatedAt time.Time
}

// InvoiceLineItem is a single line on an invoice, optionally referencing a
// catalogued service.
type InvoiceLineItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ServiceID   *uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
