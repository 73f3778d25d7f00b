package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerkit/backend/internal/application/usecase/insight"
	"github.com/ledgerkit/backend/internal/domain/entity"
	"github.com/ledgerkit/backend/internal/integration/persistence/model"
)

// insightRepository implements the insight.InsightRepository interface with
// read-only queries. Aggregation happens in the use cases; queries here only
// scope and window the raw rows.
type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a new insight repository instance.
func NewInsightRepository(db *gorm.DB) insight.InsightRepository {
	return &insightRepository{
		db: db,
	}
}

// ListCashflowTransactions returns transactions of active, budget-eligible
// accounts in the given scope whose date falls in [from, to].
func (r *insightRepository) ListCashflowTransactions(
	ctx context.Context,
	userID uuid.UUID,
	scope entity.OwnerScope,
	businessID *uuid.UUID,
	from, to time.Time,
) ([]insight.CashflowTransaction, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID).
		Where("accounts.scope = ?", string(scope)).
		Where("accounts.is_active = ?", true).
		Where("accounts.include_in_budget = ?", true).
		Where("transactions.occurred_at >= ? AND transactions.occurred_at <= ?", from, to)

	if businessID != nil {
		query = query.Where("accounts.business_id = ?", *businessID)
	}

	var transactionModels []model.TransactionModel
	if err := query.Order("transactions.occurred_at ASC").Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	rows := make([]insight.CashflowTransaction, 0, len(transactionModels))
	for _, m := range transactionModels {
		rows = append(rows, insight.CashflowTransaction{
			Direction:  entity.TransactionDirection(m.Direction),
			Amount:     m.Amount,
			OccurredAt: m.OccurredAt,
		})
	}
	return rows, nil
}

// ListQuotes returns the full quote history of a business.
func (r *insightRepository) ListQuotes(ctx context.Context, businessID uuid.UUID) ([]insight.QuoteRow, error) {
	var quoteModels []model.QuoteModel
	result := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("issue_date ASC").
		Find(&quoteModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]insight.QuoteRow, 0, len(quoteModels))
	for _, m := range quoteModels {
		rows = append(rows, insight.QuoteRow{
			Status:      entity.ParseQuoteStatus(m.Status),
			TotalAmount: m.TotalAmount,
			IssueDate:   m.IssueDate,
			UpdatedAt:   m.UpdatedAt,
		})
	}
	return rows, nil
}

// ListProjects returns all projects of a business.
func (r *insightRepository) ListProjects(ctx context.Context, businessID uuid.UUID) ([]insight.ProjectRow, error) {
	var projectModels []model.ProjectModel
	result := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&projectModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]insight.ProjectRow, 0, len(projectModels))
	for _, m := range projectModels {
		rows = append(rows, insight.ProjectRow{
			Status:      m.Status,
			CreatedAt:   m.CreatedAt,
			StartDate:   m.StartDate,
			DueDate:     m.DueDate,
			CompletedAt: m.CompletedAt,
		})
	}
	return rows, nil
}

// ListInvoices returns invoices of a business issued in [from, to], each with
// its line items and with payments filtered to the same window.
func (r *insightRepository) ListInvoices(ctx context.Context, businessID uuid.UUID, from, to time.Time) ([]insight.InvoiceRow, error) {
	var invoiceModels []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Where("invoice_date >= ? AND invoice_date <= ?", from, to).
		Preload("Client").
		Preload("Payments", "paid_at >= ? AND paid_at <= ?", from, to).
		Preload("LineItems").
		Preload("LineItems.Service").
		Order("invoice_date ASC").
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]insight.InvoiceRow, 0, len(invoiceModels))
	for _, m := range invoiceModels {
		row := insight.InvoiceRow{
			ID:          m.ID,
			ClientID:    m.ClientID,
			ProjectID:   m.ProjectID,
			TotalAmount: m.TotalAmount,
			InvoiceDate: m.InvoiceDate,
		}
		if m.Client != nil {
			row.ClientName = m.Client.Name
		}
		for _, p := range m.Payments {
			row.Payments = append(row.Payments, insight.PaymentRow{
				Amount: p.Amount,
				PaidAt: p.PaidAt,
			})
		}
		for _, li := range m.LineItems {
			item := insight.LineItemRow{
				ServiceID:   li.ServiceID,
				Description: li.Description,
				Quantity:    li.Quantity,
				Total:       li.Total,
			}
			if li.Service != nil {
				item.ServiceName = li.Service.Name
			}
			row.LineItems = append(row.LineItems, item)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListProjectTasks returns all tasks of a project.
func (r *insightRepository) ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]insight.TaskRow, error) {
	var taskModels []model.ProjectTaskModel
	result := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&taskModels)
	if result.Error != nil {
		return nil, result.Error
	}

	rows := make([]insight.TaskRow, 0, len(taskModels))
	for _, m := range taskModels {
		rows = append(rows, insight.TaskRow{
			ID:             m.ID,
			Title:          m.Title,
			Status:         m.Status,
			StartDate:      m.StartDate,
			DueDate:        m.DueDate,
			EstimatedHours: m.EstimatedHours,
			ActualHours:    m.ActualHours,
		})
	}
	return rows, nil
}
