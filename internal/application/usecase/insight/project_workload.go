package insight

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/application/adapter"
	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
)

// ProjectWorkloadInput represents the input for the project workload insight.
type ProjectWorkloadInput struct {
	UserID      uuid.UUID
	ProjectID   uuid.UUID
	From        *time.Time
	To          *time.Time
	Granularity Granularity // "" means week
}

// StatusHours is the effort bucket for one task status.
type StatusHours struct {
	Status         string  `json:"status"`
	TaskCount      int     `json:"task_count"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
}

// PeriodBucket is the effort bucket for one calendar period.
type PeriodBucket struct {
	Key            string    `json:"key"`
	PeriodStart    time.Time `json:"period_start"`
	PeriodEnd      time.Time `json:"period_end"`
	TaskCount      int       `json:"task_count"`
	EstimatedHours float64   `json:"estimated_hours"`
	ActualHours    float64   `json:"actual_hours"`
}

// TaskEffort is one ranked task in the effort/overrun lists.
type TaskEffort struct {
	TaskID         string  `json:"task_id"`
	Title          string  `json:"title"`
	Status         string  `json:"status"`
	EstimatedHours float64 `json:"estimated_hours"`
	ActualHours    float64 `json:"actual_hours"`
	OverrunRatio   float64 `json:"overrun_ratio"`
}

// ProjectWorkloadOutput represents the workload distribution of a project.
type ProjectWorkloadOutput struct {
	TotalEstimatedHours float64        `json:"total_estimated_hours"`
	TotalActualHours    float64        `json:"total_actual_hours"`
	RemainingHours      float64        `json:"remaining_hours"`
	CompletionRate      float64        `json:"completion_rate"`
	ByStatus            []StatusHours  `json:"by_status"`
	RangeStart          *time.Time     `json:"range_start"`
	RangeEnd            *time.Time     `json:"range_end"`
	ByPeriod            []PeriodBucket `json:"by_period"`
	TopByActualHours    []TaskEffort   `json:"top_by_actual_hours"`
	TopByOverrun        []TaskEffort   `json:"top_by_overrun"`
	GeneratedAt         time.Time      `json:"generated_at"`
}

// workloadStatusOrder fixes the by-status output: all four statuses are
// always present, zero-filled when empty.
var workloadStatusOrder = []entity.TaskStatus{
	entity.TaskStatusTodo,
	entity.TaskStatusInProgress,
	entity.TaskStatusBlocked,
	entity.TaskStatusDone,
}

// ProjectWorkloadUseCase buckets task effort by status and by calendar
// period, and ranks tasks by effort and overrun.
type ProjectWorkloadUseCase struct {
	insightRepo   InsightRepository
	scopeResolver adapter.ScopeResolver
	clock         Clock
}

// NewProjectWorkloadUseCase creates a new ProjectWorkloadUseCase instance.
func NewProjectWorkloadUseCase(
	insightRepo InsightRepository,
	scopeResolver adapter.ScopeResolver,
	clock Clock,
) *ProjectWorkloadUseCase {
	return &ProjectWorkloadUseCase{
		insightRepo:   insightRepo,
		scopeResolver: scopeResolver,
		clock:         clock,
	}
}

// Execute computes the workload distribution for the given project.
func (uc *ProjectWorkloadUseCase) Execute(
	ctx context.Context,
	input ProjectWorkloadInput,
) (*ProjectWorkloadOutput, error) {
	granularity := input.Granularity
	if granularity == "" {
		granularity = GranularityWeek
	}
	if granularity != GranularityWeek && granularity != GranularityMonth {
		return nil, domainerror.NewInsightError(
			domainerror.ErrCodeInvalidInsightGranularity,
			"granularity must be: week or month",
			domainerror.ErrInvalidGranularity,
		)
	}

	if _, err := uc.scopeResolver.ResolveProject(ctx, input.UserID, input.ProjectID); err != nil {
		return nil, err
	}

	tasks, err := uc.insightRepo.ListProjectTasks(ctx, input.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}

	totalEstimated := decimal.Zero
	totalActual := decimal.Zero
	statusBuckets := make(map[entity.TaskStatus]*StatusHours, len(workloadStatusOrder))
	for _, status := range workloadStatusOrder {
		statusBuckets[status] = &StatusHours{Status: string(status)}
	}

	for _, task := range tasks {
		est := ToFloatPtr(task.EstimatedHours)
		act := ToFloatPtr(task.ActualHours)
		if task.EstimatedHours != nil {
			totalEstimated = totalEstimated.Add(*task.EstimatedHours)
		}
		if task.ActualHours != nil {
			totalActual = totalActual.Add(*task.ActualHours)
		}

		bucket := statusBuckets[entity.ParseTaskStatus(task.Status)]
		bucket.TaskCount++
		bucket.EstimatedHours += est
		bucket.ActualHours += act
	}

	byStatus := make([]StatusHours, 0, len(workloadStatusOrder))
	for _, status := range workloadStatusOrder {
		byStatus = append(byStatus, *statusBuckets[status])
	}

	rangeStart, rangeEnd := uc.taskDateRange(tasks, input.From, input.To)
	byPeriod := uc.bucketByPeriod(tasks, rangeStart, rangeEnd, granularity)

	totalEstF := ToFloat(totalEstimated)
	totalActF := ToFloat(totalActual)
	remaining := totalEstF - totalActF
	if remaining < 0 {
		remaining = 0
	}

	return &ProjectWorkloadOutput{
		TotalEstimatedHours: totalEstF,
		TotalActualHours:    totalActF,
		RemainingHours:      remaining,
		CompletionRate:      SafeRate(totalActF, totalEstF),
		ByStatus:            byStatus,
		RangeStart:          rangeStart,
		RangeEnd:            rangeEnd,
		ByPeriod:            byPeriod,
		TopByActualHours:    rankByActualHours(tasks),
		TopByOverrun:        rankByOverrun(tasks),
		GeneratedAt:         uc.clock.Now(),
	}, nil
}

// taskDateRange derives the period-bucketing range: the span of all task
// start/due dates, clipped to the caller-supplied bounds. A nil result means
// no task carries any date, which is not an error.
func (uc *ProjectWorkloadUseCase) taskDateRange(
	tasks []TaskRow,
	from, to *time.Time,
) (*time.Time, *time.Time) {
	var minDate, maxDate *time.Time
	observe := func(t *time.Time) {
		if t == nil {
			return
		}
		if minDate == nil || t.Before(*minDate) {
			d := *t
			minDate = &d
		}
		if maxDate == nil || t.After(*maxDate) {
			d := *t
			maxDate = &d
		}
	}
	for _, task := range tasks {
		observe(task.StartDate)
		observe(task.DueDate)
	}
	if minDate == nil {
		return nil, nil
	}

	if from != nil && from.After(*minDate) {
		d := *from
		minDate = &d
	}
	if to != nil && to.Before(*maxDate) {
		d := *to
		maxDate = &d
	}
	if minDate.After(*maxDate) {
		return nil, nil
	}
	return minDate, maxDate
}

// bucketByPeriod generates consecutive calendar buckets over the range and
// assigns each task to the first bucket containing its due date, falling back
// to its start date. Tasks with neither date stay unbucketed.
func (uc *ProjectWorkloadUseCase) bucketByPeriod(
	tasks []TaskRow,
	rangeStart, rangeEnd *time.Time,
	granularity Granularity,
) []PeriodBucket {
	if rangeStart == nil || rangeEnd == nil {
		return []PeriodBucket{}
	}

	windows := GeneratePeriodWindows(*rangeStart, *rangeEnd, granularity)
	buckets := make([]PeriodBucket, len(windows))
	for i, w := range windows {
		buckets[i] = PeriodBucket{Key: w.Key, PeriodStart: w.Start, PeriodEnd: w.End}
	}

	for _, task := range tasks {
		anchor := task.DueDate
		if anchor == nil {
			anchor = task.StartDate
		}
		if anchor == nil {
			continue
		}
		for i, w := range windows {
			if w.Contains(*anchor) {
				buckets[i].TaskCount++
				buckets[i].EstimatedHours += ToFloatPtr(task.EstimatedHours)
				buckets[i].ActualHours += ToFloatPtr(task.ActualHours)
				break
			}
		}
	}

	return buckets
}

// rankByActualHours returns the top tasks by recorded hours. Tasks with no
// recorded hours are excluded entirely.
func rankByActualHours(tasks []TaskRow) []TaskEffort {
	ranked := make([]TaskEffort, 0, len(tasks))
	for _, task := range tasks {
		if task.ActualHours == nil {
			continue
		}
		ranked = append(ranked, taskEffort(task))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ActualHours > ranked[j].ActualHours
	})
	if len(ranked) > topRankSize {
		ranked = ranked[:topRankSize]
	}
	return ranked
}

// rankByOverrun returns the top tasks by actual/estimated ratio. The ratio is
// undefined without a positive estimate, so those tasks are excluded.
func rankByOverrun(tasks []TaskRow) []TaskEffort {
	ranked := make([]TaskEffort, 0, len(tasks))
	for _, task := range tasks {
		if ToFloatPtr(task.EstimatedHours) <= 0 {
			continue
		}
		ranked = append(ranked, taskEffort(task))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverrunRatio > ranked[j].OverrunRatio
	})
	if len(ranked) > topRankSize {
		ranked = ranked[:topRankSize]
	}
	return ranked
}

func taskEffort(task TaskRow) TaskEffort {
	est := ToFloatPtr(task.EstimatedHours)
	act := ToFloatPtr(task.ActualHours)
	return TaskEffort{
		TaskID:         task.ID.String(),
		Title:          task.Title,
		Status:         string(entity.ParseTaskStatus(task.Status)),
		EstimatedHours: est,
		ActualHours:    act,
		OverrunRatio:   SafeRate(act, est),
	}
}
