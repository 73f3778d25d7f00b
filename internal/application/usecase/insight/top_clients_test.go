package insight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
)

func TestTopClients_SingleBucketScenario(t *testing.T) {
	clientID := uuid.New()
	projectID := uuid.New()
	repo := &fakeInsightRepository{
		invoices: []InvoiceRow{
			{
				ID:          uuid.New(),
				ClientID:    &clientID,
				ClientName:  "Acme Corp",
				ProjectID:   &projectID,
				TotalAmount: dec("100"),
				InvoiceDate: date(2025, 2, 1),
				Payments: []PaymentRow{
					{Amount: dec("100"), PaidAt: date(2025, 2, 10)},
				},
			},
			{
				ID:          uuid.New(),
				ClientID:    &clientID,
				ClientName:  "Acme Corp",
				TotalAmount: dec("300"),
				InvoiceDate: date(2025, 3, 1),
			},
		},
	}
	uc := NewTopClientsUseCase(repo, &fakeScopeResolver{}, fakeClock{now: date(2025, 4, 1)})

	out, err := uc.Execute(context.Background(), TopClientsInput{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(out.Clients) != 1 {
		t.Fatalf("got %d buckets, want 1", len(out.Clients))
	}
	c := out.Clients[0]
	if !almostEqual(c.TotalInvoiced, 400) {
		t.Errorf("TotalInvoiced = %v, want 400", c.TotalInvoiced)
	}
	if !almostEqual(c.TotalPaid, 100) {
		t.Errorf("TotalPaid = %v, want 100", c.TotalPaid)
	}
	if c.InvoiceCount != 2 {
		t.Errorf("InvoiceCount = %d, want 2", c.InvoiceCount)
	}
	if !almostEqual(c.AverageInvoice, 200) {
		t.Errorf("AverageInvoice = %v, want 200", c.AverageInvoice)
	}
	if c.ProjectCount != 1 {
		t.Errorf("ProjectCount = %d, want 1", c.ProjectCount)
	}
	if c.LastActivityAt == nil || !c.LastActivityAt.Equal(date(2025, 3, 1)) {
		t.Errorf("LastActivityAt = %v, want 2025-03-01", c.LastActivityAt)
	}
}

func TestTopClients_TopNBoundAndOrdering(t *testing.T) {
	invoices := make([]InvoiceRow, 0, 7)
	for i := 0; i < 7; i++ {
		clientID := uuid.New()
		invoices = append(invoices, InvoiceRow{
			ID:          uuid.New(),
			ClientID:    &clientID,
			ClientName:  fmt.Sprintf("Client %d", i),
			TotalAmount: decimal.NewFromInt(int64(100 * (i + 1))),
			InvoiceDate: date(2025, 1, 1+i),
			Payments: []PaymentRow{
				{Amount: decimal.NewFromInt(int64(10 * (i + 1))), PaidAt: date(2025, 1, 2+i)},
			},
		})
	}
	uc := NewTopClientsUseCase(
		&fakeInsightRepository{invoices: invoices},
		&fakeScopeResolver{},
		fakeClock{now: date(2025, 4, 1)},
	)

	out, err := uc.Execute(context.Background(), TopClientsInput{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(out.Clients) != 5 {
		t.Fatalf("got %d entries, want 5", len(out.Clients))
	}
	for i := 1; i < len(out.Clients); i++ {
		prev, cur := out.Clients[i-1], out.Clients[i]
		if cur.TotalPaid > prev.TotalPaid {
			t.Errorf("entries not ordered by TotalPaid at %d", i)
		}
		if cur.TotalPaid == prev.TotalPaid && cur.TotalInvoiced > prev.TotalInvoiced {
			t.Errorf("tie at %d not broken by TotalInvoiced", i)
		}
	}
}

func TestTopClients_UnknownClientBucket(t *testing.T) {
	uc := NewTopClientsUseCase(
		&fakeInsightRepository{
			invoices: []InvoiceRow{
				{ID: uuid.New(), TotalAmount: dec("75"), InvoiceDate: date(2025, 2, 1)},
			},
		},
		&fakeScopeResolver{},
		fakeClock{now: date(2025, 4, 1)},
	)

	out, err := uc.Execute(context.Background(), TopClientsInput{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(out.Clients) != 1 {
		t.Fatalf("got %d buckets, want 1", len(out.Clients))
	}
	if out.Clients[0].ClientID != nil {
		t.Errorf("ClientID = %v, want nil", *out.Clients[0].ClientID)
	}
	if out.Clients[0].ClientName != "Unknown client" {
		t.Errorf("ClientName = %q, want %q", out.Clients[0].ClientName, "Unknown client")
	}
}

func TestTopClients_DefaultWindowAndCurrency(t *testing.T) {
	now := date(2025, 4, 1)
	business := &entity.Business{ID: uuid.New(), Currency: ""}
	uc := NewTopClientsUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{business: business},
		fakeClock{now: now},
	)

	out, err := uc.Execute(context.Background(), TopClientsInput{
		UserID:     uuid.New(),
		BusinessID: business.ID,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if out.Currency != "EUR" {
		t.Errorf("Currency = %q, want default EUR", out.Currency)
	}
	if !out.To.Equal(now) {
		t.Errorf("To = %v, want %v", out.To, now)
	}
	if !out.From.Equal(now.AddDate(-1, 0, 0)) {
		t.Errorf("From = %v, want trailing year %v", out.From, now.AddDate(-1, 0, 0))
	}
}

func TestTopClients_InvalidWindow(t *testing.T) {
	from := date(2025, 3, 1)
	to := date(2025, 1, 1)
	uc := NewTopClientsUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{},
		fakeClock{now: date(2025, 4, 1)},
	)

	_, err := uc.Execute(context.Background(), TopClientsInput{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
		From:       &from,
		To:         &to,
	})

	var insightErr *domainerror.InsightError
	if !errors.As(err, &insightErr) {
		t.Fatalf("Execute() error = %v, want InsightError", err)
	}
	if insightErr.Code != domainerror.ErrCodeInvalidPeriod {
		t.Errorf("code = %s, want %s", insightErr.Code, domainerror.ErrCodeInvalidPeriod)
	}
}
