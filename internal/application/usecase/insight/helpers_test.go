package insight

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// fakeClock returns a fixed instant.
type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

// fakeInsightRepository serves canned rows.
type fakeInsightRepository struct {
	transactions []CashflowTransaction
	quotes       []QuoteRow
	projects     []ProjectRow
	invoices     []InvoiceRow
	tasks        []TaskRow
	err          error
}

func (r *fakeInsightRepository) ListCashflowTransactions(
	_ context.Context,
	_ uuid.UUID,
	_ entity.OwnerScope,
	_ *uuid.UUID,
	_, _ time.Time,
) ([]CashflowTransaction, error) {
	return r.transactions, r.err
}

func (r *fakeInsightRepository) ListQuotes(_ context.Context, _ uuid.UUID) ([]QuoteRow, error) {
	return r.quotes, r.err
}

func (r *fakeInsightRepository) ListProjects(_ context.Context, _ uuid.UUID) ([]ProjectRow, error) {
	return r.projects, r.err
}

func (r *fakeInsightRepository) ListInvoices(
	_ context.Context,
	_ uuid.UUID,
	_, _ time.Time,
) ([]InvoiceRow, error) {
	return r.invoices, r.err
}

func (r *fakeInsightRepository) ListProjectTasks(_ context.Context, _ uuid.UUID) ([]TaskRow, error) {
	return r.tasks, r.err
}

// fakeScopeResolver resolves to fixed scopes or a fixed error.
type fakeScopeResolver struct {
	business *entity.Business
	project  *entity.Project
	err      error
}

func (r *fakeScopeResolver) ResolveBusiness(
	_ context.Context,
	_, businessID uuid.UUID,
) (*entity.Business, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.business != nil {
		return r.business, nil
	}
	return &entity.Business{ID: businessID}, nil
}

func (r *fakeScopeResolver) ResolveProject(
	_ context.Context,
	_, projectID uuid.UUID,
) (*entity.Project, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.project != nil {
		return r.project, nil
	}
	return &entity.Project{ID: projectID}, nil
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
