package insight

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/application/adapter"
	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
)

const (
	// defaultHorizonDays is used when no horizon is supplied.
	defaultHorizonDays = 90
	// minHorizonDays and maxHorizonDays bound the accepted horizon.
	minHorizonDays = 30
	maxHorizonDays = 365
	// historyLookbackDays is the fixed trailing window the daily averages are
	// derived from, regardless of horizon.
	historyLookbackDays = 90
)

// CashflowProjectionInput represents the input for a cashflow projection.
type CashflowProjectionInput struct {
	UserID      uuid.UUID
	Scope       entity.OwnerScope
	BusinessID  *uuid.UUID // required when Scope is business
	HorizonDays int        // 0 means default (90)
	StartDate   time.Time  // zero means now
}

// CashflowPoint is one projected day.
type CashflowPoint struct {
	Date    time.Time `json:"date"`
	Balance float64   `json:"balance"`
	Inflow  float64   `json:"inflow"`
	Outflow float64   `json:"outflow"`
	Net     float64   `json:"net"`
}

// CashflowProjectionOutput represents the projected cashflow curve.
type CashflowProjectionOutput struct {
	Scope           string          `json:"scope"`
	HorizonDays     int             `json:"horizon_days"`
	StartDate       time.Time       `json:"start_date"`
	AvgDailyInflow  float64         `json:"avg_daily_inflow"`
	AvgDailyOutflow float64         `json:"avg_daily_outflow"`
	Points          []CashflowPoint `json:"points"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// CashflowProjectionUseCase derives daily average inflow/outflow from a
// trailing 90-day window and extrapolates a cumulative balance curve over the
// requested horizon.
type CashflowProjectionUseCase struct {
	insightRepo   InsightRepository
	scopeResolver adapter.ScopeResolver
	clock         Clock
}

// NewCashflowProjectionUseCase creates a new CashflowProjectionUseCase instance.
func NewCashflowProjectionUseCase(
	insightRepo InsightRepository,
	scopeResolver adapter.ScopeResolver,
	clock Clock,
) *CashflowProjectionUseCase {
	return &CashflowProjectionUseCase{
		insightRepo:   insightRepo,
		scopeResolver: scopeResolver,
		clock:         clock,
	}
}

// Execute computes the projection. The curve starts at 0, not at the current
// account balance: it is a relative projection of net drift.
func (uc *CashflowProjectionUseCase) Execute(
	ctx context.Context,
	input CashflowProjectionInput,
) (*CashflowProjectionOutput, error) {
	horizon := input.HorizonDays
	if horizon == 0 {
		horizon = defaultHorizonDays
	}
	if horizon < minHorizonDays || horizon > maxHorizonDays {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInvalidHorizon,
			fmt.Sprintf("horizon_days must be between %d and %d", minHorizonDays, maxHorizonDays),
			domainerror.ErrInvalidHorizon,
		)
	}

	switch input.Scope {
	case entity.OwnerScopePersonal:
		// The user is the scope; nothing further to resolve.
	case entity.OwnerScopeBusiness:
		if input.BusinessID == nil {
			return nil, domainerror.NewInsightError(
				domainerror.ErrCodeInvalidScope,
				"business_id is required for business scope",
				domainerror.ErrInvalidScope,
			)
		}
		// Ownership and existence checks happen here; their errors surface
		// unchanged.
		if _, err := uc.scopeResolver.ResolveBusiness(ctx, input.UserID, *input.BusinessID); err != nil {
			return nil, err
		}
	default:
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInvalidScope,
			"scope must be: personal or business",
			domainerror.ErrInvalidScope,
		)
	}

	start := input.StartDate
	if start.IsZero() {
		start = uc.clock.Now()
	}
	historyStart := start.AddDate(0, 0, -historyLookbackDays)

	rows, err := uc.insightRepo.ListCashflowTransactions(
		ctx, input.UserID, input.Scope, input.BusinessID, historyStart, start,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cashflow transactions: %w", err)
	}

	totalIn := decimal.Zero
	totalOut := decimal.Zero
	for _, row := range rows {
		if row.Direction == entity.DirectionIn {
			totalIn = totalIn.Add(row.Amount)
		} else {
			totalOut = totalOut.Add(row.Amount)
		}
	}

	totalDays := math.Ceil(DaysBetween(historyStart, start))
	if totalDays < 1 {
		totalDays = 1
	}
	avgInflow := SafeRate(ToFloat(totalIn), totalDays)
	avgOutflow := SafeRate(ToFloat(totalOut), totalDays)
	net := avgInflow - avgOutflow

	startDay := StartOfDay(start)
	points := make([]CashflowPoint, 0, horizon)
	balance := 0.0
	for i := 1; i <= horizon; i++ {
		balance += net
		points = append(points, CashflowPoint{
			Date:    startDay.AddDate(0, 0, i),
			Balance: balance,
			Inflow:  avgInflow,
			Outflow: avgOutflow,
			Net:     net,
		})
	}

	return &CashflowProjectionOutput{
		Scope:           string(input.Scope),
		HorizonDays:     horizon,
		StartDate:       start,
		AvgDailyInflow:  avgInflow,
		AvgDailyOutflow: avgOutflow,
		Points:          points,
		GeneratedAt:     uc.clock.Now(),
	}, nil
}
