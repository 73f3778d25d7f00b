package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCancelled QuoteStatus = "cancelled"
)

// ParseQuoteStatus maps a raw status string to a QuoteStatus.
// Unrecognized values fall back to draft rather than failing.
func ParseQuoteStatus(s string) QuoteStatus {
	switch QuoteStatus(s) {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusCancelled:
		return QuoteStatus(s)
	default:
		return QuoteStatusDraft
	}
}

// Quote represents a price quote issued by a business. Status transitions are
// driven by the quote lifecycle service; analytics reads snapshots only.
// UpdatedAt doubles as the acceptance timestamp for accepted quotes.
type Quote struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	ClientID    *uuid.UUID
	Status      QuoteStatus
	TotalAmount decimal.Decimal
	IssueDate   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
