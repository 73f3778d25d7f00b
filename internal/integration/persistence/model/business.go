package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// BusinessModel represents the businesses table in the database.
type BusinessModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Currency  string    `gorm:"type:varchar(3)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Owner *UserModel `gorm:"foreignKey:OwnerID;references:ID"`
}

// TableName returns the table name for the BusinessModel.
func (BusinessModel) TableName() string {
	return "businesses"
}

// ToEntity converts a BusinessModel to a domain Business entity.
func (m *BusinessModel) ToEntity() *entity.Business {
	return &entity.Business{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Currency:  m.Currency,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ClientModel represents the clients table in the database.
type ClientModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(255);not null"`
	Email      string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`

	Business *BusinessModel `gorm:"foreignKey:BusinessID;references:ID"`
}

// TableName returns the table name for the ClientModel.
func (ClientModel) TableName() string {
	return "clients"
}
