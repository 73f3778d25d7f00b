package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// TaskStatus represents the lifecycle state of a project task.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
)

// ParseTaskStatus maps a raw status string to a TaskStatus.
// Unrecognized values fall back to todo rather than failing.
func ParseTaskStatus(s string) TaskStatus {
	switch TaskStatus(s) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return TaskStatus(s)
	default:
		return TaskStatusTodo
	}
}

// Project represents a client project run by a business.
// CompletedAt is the sole completion signal; a project without a due date
// cannot be judged on-time or late.
type Project struct {
	ID          uuid.UUID
	BusinessID  uuid.UUID
	ClientID    *uuid.UUID
	Name        string
	Status      ProjectStatus
	StartDate   *time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectTask represents a unit of work within a project, with optional
// scheduling dates and effort estimates.
type ProjectTask struct {
	ID             uuid.UUID
	ProjectID      uuid.UUID
	Title          string
	Status         TaskStatus
	StartDate      *time.Time
	DueDate        *time.Time
	EstimatedHours *decimal.Decimal
	ActualHours    *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
