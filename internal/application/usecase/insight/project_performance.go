package insight

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/application/adapter"
)

// ProjectPerformanceInput represents the input for the project performance summary.
type ProjectPerformanceInput struct {
	UserID     uuid.UUID
	BusinessID uuid.UUID
}

// StatusCount is one entry of a status frequency distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ProjectPerformanceOutput summarizes completion timing and status spread of
// a business's projects.
type ProjectPerformanceOutput struct {
	ProjectCount       int           `json:"project_count"`
	CompletedProjects  int           `json:"completed_projects"`
	OnTimeProjects     int           `json:"on_time_projects"`
	LateProjects       int           `json:"late_projects"`
	OnTimeRate         float64       `json:"on_time_rate"`
	AvgCompletionDays  float64       `json:"avg_completion_days"`
	AvgDelayDays       float64       `json:"avg_delay_days"`
	StatusDistribution []StatusCount `json:"status_distribution"`
	GeneratedAt        time.Time     `json:"generated_at"`
}

// ProjectPerformanceUseCase reduces a business's projects into completion
// timing, on-time rate and a status frequency distribution.
type ProjectPerformanceUseCase struct {
	insightRepo   InsightRepository
	scopeResolver adapter.ScopeResolver
	clock         Clock
}

// NewProjectPerformanceUseCase creates a new ProjectPerformanceUseCase instance.
func NewProjectPerformanceUseCase(
	insightRepo InsightRepository,
	scopeResolver adapter.ScopeResolver,
	clock Clock,
) *ProjectPerformanceUseCase {
	return &ProjectPerformanceUseCase{
		insightRepo:   insightRepo,
		scopeResolver: scopeResolver,
		clock:         clock,
	}
}

// Execute computes the performance summary for the given business. Projects
// without a completion timestamp contribute only to the status distribution.
func (uc *ProjectPerformanceUseCase) Execute(
	ctx context.Context,
	input ProjectPerformanceInput,
) (*ProjectPerformanceOutput, error) {
	if _, err := uc.scopeResolver.ResolveBusiness(ctx, input.UserID, input.BusinessID); err != nil {
		return nil, err
	}

	projects, err := uc.insightRepo.ListProjects(ctx, input.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	statusCounts := make(map[string]int)
	statusOrder := make([]string, 0, 4)

	completed := 0
	onTime := 0
	late := 0
	durationSum := 0.0
	delaySum := 0.0

	for _, p := range projects {
		if _, seen := statusCounts[p.Status]; !seen {
			statusOrder = append(statusOrder, p.Status)
		}
		statusCounts[p.Status]++

		if p.CompletedAt == nil {
			continue
		}
		completed++

		started := p.CreatedAt
		if p.StartDate != nil {
			started = *p.StartDate
		}
		durationSum += DaysBetween(started, *p.CompletedAt)

		if p.DueDate == nil {
			// No due date, no on-time/late judgment possible.
			continue
		}
		if !p.CompletedAt.After(*p.DueDate) {
			onTime++
		} else {
			late++
			delaySum += DaysBetween(*p.DueDate, *p.CompletedAt)
		}
	}

	distribution := make([]StatusCount, 0, len(statusOrder))
	for _, status := range statusOrder {
		distribution = append(distribution, StatusCount{Status: status, Count: statusCounts[status]})
	}

	return &ProjectPerformanceOutput{
		ProjectCount:       len(projects),
		CompletedProjects:  completed,
		OnTimeProjects:     onTime,
		LateProjects:       late,
		OnTimeRate:         SafeRate(float64(onTime), float64(completed)),
		AvgCompletionDays:  SafeRate(durationSum, float64(completed)),
		AvgDelayDays:       SafeRate(delaySum, float64(late)),
		StatusDistribution: distribution,
		GeneratedAt:        uc.clock.Now(),
	}, nil
}
