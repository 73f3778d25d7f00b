package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	BusinessID      *uuid.UUID `gorm:"type:uuid;index"`
	Name            string     `gorm:"type:varchar(255);not null"`
	Scope           string     `gorm:"type:varchar(10);not null;index"`
	IsActive        bool       `gorm:"not null"`
	IncludeInBudget bool       `gorm:"not null"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`

	User     *UserModel     `gorm:"foreignKey:UserID;references:ID"`
	Business *BusinessModel `gorm:"foreignKey:BusinessID;references:ID"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:              m.ID,
		UserID:          m.UserID,
		BusinessID:      m.BusinessID,
		Name:            m.Name,
		Scope:           entity.OwnerScope(m.Scope),
		IsActive:        m.IsActive,
		IncludeInBudget: m.IncludeInBudget,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Direction   string          `gorm:"type:varchar(3);not null;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
	OccurredAt  time.Time       `gorm:"type:date;not null;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}
