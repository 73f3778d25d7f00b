package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/application/adapter"
	"github.com/ledgerkit/backend/internal/domain/entity"
)

// PipelineSummaryInput represents the input for the quote pipeline summary.
type PipelineSummaryInput struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
}

// PipelineSummaryOutput summarizes the full quote history of a business.
type PipelineSummaryOutput struct {
	QuoteCount          int       `json:"quote_count"`
	AcceptedCount       int       `json:"accepted_count"`
	TotalQuoted         float64   `json:"total_quoted"`
	TotalAccepted       float64   `json:"total_accepted"`
	ConversionRate      float64   `json:"conversion_rate"`
	AvgTimeToAcceptDays float64   `json:"avg_time_to_accept_days"`
	GeneratedAt         time.Time `json:"generated_at"`
}

// PipelineSummaryUseCase reduces the quote lifecycle into counts, monetary
// totals and time-to-acceptance statistics. The full history is always
// considered; there is no date filtering.
type PipelineSummaryUseCase struct {
	insightRepo   InsightRepository
	scopeResolver adapter.ScopeResolver
	clock         Clock
}

// NewPipelineSummaryUseCase creates a new PipelineSummaryUseCase instance.
func NewPipelineSummaryUseCase(
	insightRepo InsightRepository,
	scopeResolver adapter.ScopeResolver,
	clock Clock,
) *PipelineSummaryUseCase {
	return &PipelineSummaryUseCase{
		insightRepo:   insightRepo,
		scopeResolver: scopeResolver,
		clock:         clock,
	}
}

// Execute computes the pipeline summary for the given business.
func (uc *PipelineSummaryUseCase) Execute(
	ctx context.Context,
	input PipelineSummaryInput,
) (*PipelineSummaryOutput, error) {
	if _, err := uc.scopeResolver.ResolveBusiness(ctx, input.UserID, input.BusinessID); err != nil {
		return nil, err
	}

	quotes, err := uc.insightRepo.ListQuotes(ctx, input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}

	acceptedCount := 0
	totalQuoted := decimal.Zero
	totalAccepted := decimal.Zero
	acceptDaysSum := 0.0
	for _, q := range quotes {
		totalQuoted = totalQuoted.Add(q.TotalAmount)
		if q.Status == entity.QuoteStatusAccepted {
			acceptedCount++
			totalAccepted = totalAccepted.Add(q.TotalAmount)
			// UpdatedAt is the acceptance timestamp for accepted quotes.
			acceptDaysSum += DaysBetween(q.IssueDate, q.UpdatedAt)
		}
	}

	return &PipelineSummaryOutput{
		QuoteCount:          len(quotes),
		AcceptedCount:       acceptedCount,
		TotalQuoted:         ToFloat(totalQuoted),
		TotalAccepted:       ToFloat(totalAccepted),
		ConversionRate:      SafeRate(float64(acceptedCount), float64(len(quotes))),
		AvgTimeToAcceptDays: SafeRate(acceptDaysSum, float64(acceptedCount)),
		GeneratedAt:         uc.clock.Now(),
	}, nil
}
