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

// TopServicesInput represents the input for the top services ranking.
type TopServicesInput struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
	From       *time.Time // default: one year before To
	To         *time.Time // default: now
}

// ServiceRanking is one ranked service bucket.
type ServiceRanking struct {
	ServiceID      *string    `json:"service_id"` // nil for the unknown bucket
	ServiceName    string     `json:"service_name"`
	TotalInvoiced  float64    `json:"total_invoiced"`
	TotalPaid      float64    `json:"total_paid"`
	InvoiceCount   int        `json:"invoice_count"`
	ProjectCount   int        `json:"project_count"`
	AveragePrice   float64    `json:"average_price"`
	LastActivityAt *time.Time `json:"last_activity_at"`
}

// TopServicesOutput represents the ranked service list.
type TopServicesOutput struct {
	Currency    string           `json:"currency"`
	From        time.Time        `json:"from"`
	To          time.Time        `json:"to"`
	Services    []ServiceRanking `json:"services"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// serviceBucket accumulates one service group during the reduction.
type serviceBucket struct {
	serviceID    *uuid.UUID
	serviceName  string
	invoiced     decimal.Decimal
	paid         decimal.Decimal
	invoiceCount int
	projects     map[uuid.UUID]struct{}
	lastActivity time.Time
}

// TopServicesUseCase mirrors the top clients reduction with the grouping key
// substituted: line items are grouped by the service they reference. Line
// totals accumulate into totalInvoiced; an invoice's in-window payments and
// its invoice count land once on every service group the invoice touches.
type TopServicesUseCase struct {
	insightRepo   InsightRepository
	scopeResolver adapter.ScopeResolver
	clock         Clock
}

// NewTopServicesUseCase creates a new TopServicesUseCase instance.
func NewTopServicesUseCase(
	insightRepo InsightRepository,
	scopeResolver adapter.ScopeResolver,
	clock Clock,
) *TopServicesUseCase {
	return &TopServicesUseCase{
		insightRepo:   insightRepo,
		scopeResolver: scopeResolver,
		clock:         clock,
	}
}

// Execute computes the top services ranking for the given business and window.
func (uc *TopServicesUseCase) Execute(
	ctx context.Context,
	input TopServicesInput,
) (*TopServicesOutput, error) {
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

	buckets := make(map[string]*serviceBucket)
	order := make([]string, 0)

	for _, inv := range invoices {
		paidInWindow := decimal.Zero
		lastPayment := time.Time{}
		for _, p := range inv.Payments {
			paidInWindow = paidInWindow.Add(p.Amount)
			lastPayment = laterOf(lastPayment, p.PaidAt)
		}

		// Each service appearing on this invoice receives the invoice-level
		// figures exactly once, however many lines reference it.
		touched := make(map[string]struct{})

		for _, line := range inv.LineItems {
			key := unknownBucketKey
			if line.ServiceID != nil {
				key = line.ServiceID.String()
			}

			bucket, ok := buckets[key]
			if !ok {
				name := line.ServiceName
				if line.ServiceID == nil {
					name = "Unknown service"
				}
				bucket = &serviceBucket{
					serviceID:   line.ServiceID,
					serviceName: name,
					invoiced:    decimal.Zero,
					paid:        decimal.Zero,
					projects:    make(map[uuid.UUID]struct{}),
				}
				buckets[key] = bucket
				order = append(order, key)
			}

			bucket.invoiced = bucket.invoiced.Add(line.Total)

			if _, seen := touched[key]; seen {
				continue
			}
			touched[key] = struct{}{}

			bucket.invoiceCount++
			bucket.paid = bucket.paid.Add(paidInWindow)
			bucket.lastActivity = laterOf(bucket.lastActivity, inv.InvoiceDate)
			bucket.lastActivity = laterOf(bucket.lastActivity, lastPayment)
			if inv.ProjectID != nil {
				bucket.projects[*inv.ProjectID] = struct{}{}
			}
		}
	}

	rankings := make([]ServiceRanking, 0, len(order))
	for _, key := range order {
		bucket := buckets[key]
		var serviceID *string
		if bucket.serviceID != nil {
			id := bucket.serviceID.String()
			serviceID = &id
		}
		var lastActivity *time.Time
		if !bucket.lastActivity.IsZero() {
			t := bucket.lastActivity
			lastActivity = &t
		}
		invoiced := ToFloat(bucket.invoiced)
		rankings = append(rankings, ServiceRanking{
			ServiceID:      serviceID,
			ServiceName:    bucket.serviceName,
			TotalInvoiced:  invoiced,
			TotalPaid:      ToFloat(bucket.paid),
			InvoiceCount:   bucket.invoiceCount,
			ProjectCount:   len(bucket.projects),
			AveragePrice:   SafeRate(invoiced, float64(bucket.invoiceCount)),
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

	return &TopServicesOutput{
		Currency:    business.ResolvedCurrency(),
		From:        from,
		To:          to,
		Services:    rankings,
		GeneratedAt: uc.clock.Now(),
	}, nil
}
