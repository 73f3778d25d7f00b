package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// QuoteModel represents the quotes table in the database.
type QuoteModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status      string          `gorm:"type:varchar(20);not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IssueDate   time.Time       `gorm:"type:date;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Business *BusinessModel `gorm:"foreignKey:BusinessID;references:ID"`
	Client   *ClientModel   `gorm:"foreignKey:ClientID;references:ID"`
}

// TableName returns the table name for the QuoteModel.
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToEntity converts a QuoteModel to a domain Quote entity.
func (m *QuoteModel) ToEntity() *entity.Quote {
	return &entity.Quote{
		ID:          m.ID,
		BusinessID:  m.BusinessID,
		ClientID:    m.ClientID,
		Status:      entity.ParseQuoteStatus(m.Status),
		TotalAmount: m.TotalAmount,
		IssueDate:   m.IssueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
