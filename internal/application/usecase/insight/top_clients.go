package insight

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/application/adapter"
)

// TopClientsInput represents the input for the top clients ranking.
type TopClientsInput struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
	From       *time.Time // default: one year before To
	To         *time.Time // default: now
}

// ClientRanking is one ranked client bucket.
type ClientRanking struct {
	ClientID       *string    `json:"client_id"` // nil for the unknown bucket
	ClientName     string     `json:"client_name"`
	TotalInvoiced  float64    `json:"total_invoiced"`
	TotalPaid      float64    `json:"total_paid"`
	InvoiceCount   int        `json:"invoice_count"`
	ProjectCount   int        `json:"project_count"`
	AverageInvoice float64    `json:"average_invoice"`
	LastActivityAt *time.Time `json:"last_activity_at"`
}

// TopClientsOutput represents the ranked client list.
type TopClientsOutput struct {
	Currency    string          `json:"currency"`
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Clients     []ClientRanking `json:"clients"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// clientBucket accumulates one client group during the reduction.
type clientBucket struct {
	clientID     *uuid.UUID
	clientName   string
	invoiced     decimal.Decimal
	paid         decimal.Decimal
	invoiceCount int
	projects     map[uuid.UUID]struct{}
	lastActivity time.Time
}

// TopClientsUseCase groups a business's invoices and payments by client,
// ranks the groups by money received and truncates to the top 5.
type TopClientsUseCase struct {
	insightRepo   InsightRepository
	scopeResolver adapter.ScopeResolver
	clock         Clock
}

// NewTopClientsUseCase creates a new TopClientsUseCase instance.
func NewTopClientsUseCase(
	insightRepo InsightRepository,
	scopeResolver adapter.ScopeResolver,
	clock Clock,
) *TopClientsUseCase {
	return &TopClientsUseCase{
		insightRepo:   insightRepo,
		scopeResolver: scopeResolver,
		clock:         clock,
	}
}

// Execute computes the top clients ranking for the given business and window.
func (uc *TopClientsUseCase) Execute(
	ctx context.Context,
	input TopClientsInput,
) (*TopClientsOutput, error) {
	business, err := uc.scopeResolver.ResolveBusiness(ctx, input.UserID, input.BusinessID)
	if err != nil {
		return nil, err
	}

	from, to, err := resolveRankingWindow(uc.clock, input.From, input.To)
	if err != nil {
		return nil, err
	}

	invoices, err := uc.insightRepo.ListInvoices(ctx, input.BusinessID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	buckets := make(map[string]*clientBucket)
	order := make([]string, 0)

	for _, inv := range invoices {
		key := unknownBucketKey
		if inv.ClientID != nil {
			key = inv.ClientID.String()
		}

		bucket, ok := buckets[key]
		if !ok {
			name := inv.ClientName
			if inv.ClientID == nil {
				name = "Unknown client"
			}
			bucket = &clientBucket{
				clientID:   inv.ClientID,
				clientName: name,
				invoiced:   decimal.Zero,
				paid:       decimal.Zero,
				projects:   make(map[uuid.UUID]struct{}),
			}
			buckets[key] = bucket
			order = append(order, key)
		}

		bucket.invoiced = bucket.invoiced.Add(inv.TotalAmount)
		bucket.invoiceCount++
		bucket.lastActivity = laterOf(bucket.lastActivity, inv.InvoiceDate)
		if inv.ProjectID != nil {
			bucket.projects[*inv.ProjectID] = struct{}{}
		}
		for _, p := range inv.Payments {
			bucket.paid = bucket.paid.Add(p.Amount)
			bucket.lastActivity = laterOf(bucket.lastActivity, p.PaidAt)
		}
	}

	rankings := make([]ClientRanking, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		var clientID *string
		if bucket.clientID != nil {
			id := bucket.clientID.String()
			clientID = &id
		}
		var lastActivity *time.Time
		if !bucket.lastActivity.IsZero() {
			t := bucket.lastActivity
			lastActivity = &t
		}
		invoiced := ToFloat(bucket.invoiced)
		rankings = append(rankings, ClientRanking{
			ClientID:       clientID,
			ClientName:     bucket.clientName,
			TotalInvoiced:  invoiced,
			TotalPaid:      ToFloat(bucket.paid),
			InvoiceCount:   bucket.invoiceCount,
			ProjectCount:   len(bucket.projects),
			AverageInvoice: SafeRate(invoiced, float64(bucket.invoiceCount)),
			LastActivityAt: lastActivity,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].TotalPaid != rankings[j].TotalPaid {
			return rankings[i].TotalPaid > rankings[j].TotalPaid
		}
		return rankings[i].TotalInvoiced > rankings[j].TotalInvoiced
	})
	if len(rankings) > topRankSize {
		rankings = rankings[:topRankSize]
	}

	return &TopClientsOutput{
		Currency:    business.ResolvedCurrency(),
		From:        from,
		To:          to,
		Clients:     rankings,
		GeneratedAt: uc.clock.Now(),
	}, nil
}
