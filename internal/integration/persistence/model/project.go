package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// ProjectModel represents the projects table in the database.
type ProjectModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	StartDate   *time.Time `gorm:"type:date"`
	DueDate     *time.Time `gorm:"type:date"`
	CompletedAt *time.Time `gorm:"type:date"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`

	Business *BusinessModel `gorm:"foreignKey:BusinessID;references:ID"`
	Client   *ClientModel   `gorm:"foreignKey:ClientID;references:ID"`
}

// TableName returns the table name for the ProjectModel.
func (ProjectModel) TableName() string {
	return "projects"
}

// ToEntity converts a ProjectModel to a domain Project entity.
func (m *ProjectModel) ToEntity() *entity.Project {
	return &entity.Project{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		ClientID:    m.ClientID,
		Name:        m.Name,
		Status:      entity.ProjectStatus(m.Status),
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProjectTaskModel represents the project_tasks table in the database.
type ProjectTaskModel struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProjectID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Title          string           `gorm:"type:varchar(255);not null"`
	Status         string           `gorm:"type:varchar(20);not null"`
	StartDate      *time.Time       `gorm:"type:date"`
	DueDate        *time.Time       `gorm:"type:date"`
	EstimatedHours *decimal.Decimal `gorm:"type:decimal(8,2)"`
	ActualHours    *decimal.Decimal `gorm:"type:decimal(8,2)"`
	CreatedAt      time.Time        `gorm:"not null"`
	UpdatedAt      time.Time        `gorm:"not null"`

	Project *ProjectModel `gorm:"foreignKey:ProjectID;references:ID"`
}

// TableName returns the table name for the ProjectTaskModel.
func (ProjectTaskModel) TableName() string {
	return "project_tasks"
}
