package insight

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// InsightRepository defines the read-only row fetching the insight use cases
// depend on. Implementations return rows already scoped to the given owner;
// the use cases never write and never filter by ownership themselves.
type InsightRepository interface {
	// ListCashflowTransactions returns transactions of active, budget-eligible
	// accounts in the given scope whose date falls in [from, to].
	ListCashflowTransactions(
		ctx context.Context,
		userID uuid.UUID,
		scope entity.OwnerScope,
		businessID *uuid.UUID,
		from, to time.Time,
	) ([]CashflowTransaction, error)

	// ListQuotes returns the full quote history of a business.
	ListQuotes(ctx context.Context, businessID uuid.UUID) ([]QuoteRow, error)

	// ListProjects returns all projects of a business.
	ListProjects(ctx context.Context, businessID uuid.UUID) ([]ProjectRow, error)

	// ListInvoices returns invoices of a business issued in [from, to], each
	// with its line items and with payments filtered to the same window.
	ListInvoices(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]InvoiceRow, error)

	// ListProjectTasks returns all tasks of a project.
	ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]TaskRow, error)
}

// CashflowTransaction is the row shape consumed by the cashflow projection.
type CashflowTransaction struct {
	Direction  entity.TransactionDirection
	Amount     decimal.Decimal
	OccurredAt time.Time
}

// QuoteRow is the row shape consumed by the pipeline summary.
type QuoteRow struct {
	Status      entity.QuoteStatus
	TotalAmount decimal.Decimal
	IssueDate   time.Time
	UpdatedAt   time.Time
}

// ProjectRow is the row shape consumed by the project performance summary.
// Status stays a raw string: the distribution tallies whatever the store
// holds, recognized or not.
type ProjectRow struct {
	Status      string
	CreatedAt   time.Time
	StartDate   *time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
}

// InvoiceRow is the row shape consumed by the ranking insights.
type InvoiceRow struct {
	ID          uuid.UUID
	ClientID    *uuid.UUID
	ClientName  string
	ProjectID   *uuid.UUID
	TotalAmount decimal.Decimal
	InvoiceDate time.Time
	Payments    []PaymentRow
	LineItems   []LineItemRow
}

// PaymentRow is a payment recorded against an invoice.
type PaymentRow struct {
	Amount decimal.Decimal
	PaidAt time.Time
}

// LineItemRow is a single invoice line referencing an optional service.
type LineItemRow struct {
	ServiceID   *uuid.UUID
	ServiceName string
	Description string
	Quantity    decimal.Decimal
	Total       decimal.Decimal
}

// TaskRow is the row shape consumed by the workload insight. Status stays a
// raw string; unrecognized values are tallied under todo.
type TaskRow struct {
	ID             uuid.UUID
	Title          string
	Status         string
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
}
