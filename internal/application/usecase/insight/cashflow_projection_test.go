package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
)

func TestCashflowProjection_AveragesAndBalance(t *testing.T) {
	start := date(2025, 6, 30)
	repo := &fakeInsightRepository{
		transactions: []CashflowTransaction{
			{Direction: entity.DirectionIn, Amount: dec("900"), OccurredAt: date(2025, 5, 1)},
			{Direction: entity.DirectionOut, Amount: dec("180"), OccurredAt: date(2025, 6, 1)},
		},
	}
	uc := NewCashflowProjectionUseCase(repo, &fakeScopeResolver{}, fakeClock{now: start})

	out, err := uc.Execute(context.Background(), CashflowProjectionInput{
		UserID:      uuid.New(),
		Scope:       entity.OwnerScopePersonal,
		HorizonDays: 30,
		StartDate:   start,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !almostEqual(out.AvgDailyInflow, 10) {
		t.Errorf("AvgDailyInflow = %v, want 10", out.AvgDailyInflow)
	}
	if !almostEqual(out.AvgDailyOutflow, 2) {
		t.Errorf("AvgDailyOutflow = %v, want 2", out.AvgDailyOutflow)
	}
	if len(out.Points) != 30 {
		t.Fatalf("got %d points, want 30", len(out.Points))
	}
	if !almostEqual(out.Points[29].Balance, 240) {
		t.Errorf("day 30 balance = %v, want 240", out.Points[29].Balance)
	}
	if !almostEqual(out.Points[0].Net, 8) {
		t.Errorf("net = %v, want 8", out.Points[0].Net)
	}
}

func TestCashflowProjection_HorizonInvariant(t *testing.T) {
	for _, horizon := range []int{30, 60, 90, 180, 365} {
		uc := NewCashflowProjectionUseCase(
			&fakeInsightRepository{},
			&fakeScopeResolver{},
			fakeClock{now: date(2025, 1, 15)},
		)

		out, err := uc.Execute(context.Background(), CashflowProjectionInput{
			UserID:      uuid.New(),
			Scope:       entity.OwnerScopePersonal,
			HorizonDays: horizon,
		})
		if err != nil {
			t.Fatalf("horizon %d: Execute() error = %v", horizon, err)
		}
		if len(out.Points) != horizon {
			t.Fatalf("horizon %d: got %d points", horizon, len(out.Points))
		}
		for i := 1; i < len(out.Points); i++ {
			if !out.Points[i].Date.Equal(out.Points[i-1].Date.AddDate(0, 0, 1)) {
				t.Fatalf("horizon %d: dates not strictly increasing by one day at %d", horizon, i)
			}
		}
	}
}

func TestCashflowProjection_DefaultHorizon(t *testing.T) {
	uc := NewCashflowProjectionUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{},
		fakeClock{now: date(2025, 1, 15)},
	)

	out, err := uc.Execute(context.Background(), CashflowProjectionInput{
		UserID: uuid.New(),
		Scope:  entity.OwnerScopePersonal,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(out.Points) != 90 {
		t.Errorf("got %d points, want default 90", len(out.Points))
	}
}

func TestCashflowProjection_EmptyHistory(t *testing.T) {
	uc := NewCashflowProjectionUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{},
		fakeClock{now: date(2025, 1, 15)},
	)

	out, err := uc.Execute(context.Background(), CashflowProjectionInput{
		UserID:      uuid.New(),
		Scope:       entity.OwnerScopePersonal,
		HorizonDays: 30,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, p := range out.Points {
		if p.Balance != 0 || p.Inflow != 0 || p.Outflow != 0 || p.Net != 0 {
			t.Fatalf("empty history produced non-zero point: %+v", p)
		}
	}
}

func TestCashflowProjection_InvalidHorizon(t *testing.T) {
	tests := []struct {
		name    string
		horizon int
	}{
		{name: "below minimum", horizon: 10},
		{name: "above maximum", horizon: 400},
		{name: "negative", horizon: -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCashflowProjectionUseCase(
				&fakeInsightRepository{},
				&fakeScopeResolver{},
				fakeClock{now: date(2025, 1, 15)},
			)

			_, err := uc.Execute(context.Background(), CashflowProjectionInput{
				UserID:      uuid.New(),
				Scope:       entity.OwnerScopePersonal,
				HorizonDays: tt.horizon,
			})

			var insightErr *domainerror.InsightError
			if !errors.As(err, &insightErr) {
				t.Fatalf("Execute() error = %v, want InsightError", err)
			}
			if insightErr.Code != domainerror.ErrCodeInvalidHorizon {
				t.Errorf("code = %s, want %s", insightErr.Code, domainerror.ErrCodeInvalidHorizon)
			}
		})
	}
}

func TestCashflowProjection_BusinessScopeRequiresID(t *testing.T) {
	uc := NewCashflowProjectionUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{},
		fakeClock{now: date(2025, 1, 15)},
	)

	_, err := uc.Execute(context.Background(), CashflowProjectionInput{
		UserID: uuid.New(),
		Scope:  entity.OwnerScopeBusiness,
	})

	var insightErr *domainerror.InsightError
	if !errors.As(err, &insightErr) {
		t.Fatalf("Execute() error = %v, want InsightError", err)
	}
}

func TestCashflowProjection_ScopeErrorsPropagateUnchanged(t *testing.T) {
	scopeErr := domainerror.NewScopeError(
		domainerror.ErrCodeScopeOwnership,
		"scope is owned by another user",
		domainerror.ErrScopeOwnership,
	)
	businessID := uuid.New()
	uc := NewCashflowProjectionUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{err: scopeErr},
		fakeClock{now: date(2025, 1, 15)},
	)

	_, err := uc.Execute(context.Background(), CashflowProjectionInput{
		UserID:     uuid.New(),
		Scope:      entity.OwnerScopeBusiness,
		BusinessID: &businessID,
	})
	if !errors.Is(err, domainerror.ErrScopeOwnership) {
		t.Errorf("Execute() error = %v, want ownership error propagated", err)
	}
}

func TestCashflowProjection_StartDateDefaultsToClock(t *testing.T) {
	now := time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)
	uc := NewCashflowProjectionUseCase(
		&fakeInsightRepository{},
		&fakeScopeResolver{},
		fakeClock{now: now},
	)

	out, err := uc.Execute(context.Background(), CashflowProjectionInput{
		UserID:      uuid.New(),
		Scope:       entity.OwnerScopePersonal,
		HorizonDays: 30,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Points[0].Date.Equal(date(2025, 4, 11)) {
		t.Errorf("first point date = %v, want 2025-04-11", out.Points[0].Date)
	}
	if !out.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want clock time %v", out.GeneratedAt, now)
	}
}
