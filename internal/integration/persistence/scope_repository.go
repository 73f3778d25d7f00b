package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerkit/backend/internal/application/adapter"
	"github.com/ledgerkit/backend/internal/domain/entity"
	domainerror "github.com/ledgerkit/backend/internal/domain/error"
	"github.com/ledgerkit/backend/internal/integration/persistence/model"
)

// scopeRepository implements the adapter.ScopeResolver interface.
type scopeRepository struct {
	db *gorm.DB
}

// NewScopeRepository creates a new scope repository instance.
func NewScopeRepository(db *gorm.DB) adapter.ScopeResolver {
	return &scopeRepository{
		db: db,
	}
}

// ResolveBusiness returns the business when it exists and belongs to the user.
func (r *scopeRepository) ResolveBusiness(ctx context.Context, userID, businessID uuid.UUID) (*entity.Business, error) {
	var businessModel model.BusinessModel
	result := r.db.WithContext(ctx).Where("id = ?", businessID).First(&businessModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewScopeError(
				domainerror.ErrCodeBusinessNotFound,
				"business not found",
				domainerror.ErrBusinessNotFound,
			)
		}
		return nil, result.Error
	}

	if businessModel.OwnerID != userID {
		return nil, domainerror.NewScopeError(
			domainerror.ErrCodeScopeOwnership,
			"business is owned by another user",
			domainerror.ErrScopeOwnership,
		)
	}

	return businessModel.ToEntity(), nil
}

// ResolveProject returns the project when it exists and its business belongs
// to the user.
func (r *scopeRepository) ResolveProject(ctx context.Context, userID, projectID uuid.UUID) (*entity.Project, error) {
	var projectModel model.ProjectModel
	result := r.db.WithContext(ctx).Where("id = ?", projectID).First(&projectModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewScopeError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, result.Error
	}

	var businessModel model.BusinessModel
	result = r.db.WithContext(ctx).Where("id = ?", projectModel.BusinessID).First(&businessModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewScopeError(
				domainerror.ErrCodeProjectNotFound,
				"project not found",
				domainerror.ErrProjectNotFound,
			)
		}
		return nil, result.Error
	}

	if businessModel.OwnerID != userID {
		return nil, domainerror.NewScopeError(
			domainerror.ErrCodeScopeOwnership,
			"project is owned by another user",
			domainerror.ErrScopeOwnership,
		)
	}

	return projectModel.ToEntity(), nil
}
