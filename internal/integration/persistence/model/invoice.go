package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceItemModel represents the service_items catalog table in the database.
type ServiceItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name       string          `gorm:"type:varchar(255);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`

	Business *BusinessModel `gorm:"foreignKey:BusinessID;references:ID"`
}

// TableName returns the table name for the ServiceItemModel.
func (ServiceItemModel) TableName() string {
	return "service_items"
}

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BusinessID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID    *uuid.UUID      `gorm:"type:uuid;index"`
	ProjectID   *uuid.UUID      `gorm:"type:uuid;index"`
	Number      string          `gorm:"type:varchar(50)"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	InvoiceDate time.Time       `gorm:"type:date;not null;index"`
	DueDate     *time.Time      `gorm:"type:date"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Business  *BusinessModel         `gorm:"foreignKey:BusinessID;references:ID"`
	Client    *ClientModel           `gorm:"foreignKey:ClientID;references:ID"`
	Payments  []InvoicePaymentModel  `gorm:"foreignKey:InvoiceID;references:ID"`
	LineItems []InvoiceLineItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoicePaymentModel represents the invoice_payments table in the database.
type InvoicePaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAt    time.Time       `gorm:"type:date;not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the InvoicePaymentModel.
func (InvoicePaymentModel) TableName() string {
	return "invoice_payments"
}

// InvoiceLineItemModel represents the invoice_line_items table in the database.
type InvoiceLineItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ServiceID   *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`

	Service *ServiceItemModel `gorm:"foreignKey:ServiceID;references:ID"`
}

// TableName returns the table name for the InvoiceLineItemModel.
func (InvoiceLineItemModel) TableName() string {
	return "invoice_line_items"
}
