// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerkit/backend/internal/domain/entity"
)

// ScopeResolver verifies that a caller-supplied scope exists and is owned by
// the calling user before any insight query runs. Insight use cases trust
// this boundary absolutely and perform no additional ownership filtering.
type ScopeResolver interface {
	// ResolveBusiness returns the business when it exists and belongs to userID.
	// Returns domain ErrBusinessNotFound / ErrScopeOwnership otherwise.
	ResolveBusiness(ctx context.Context, userID, businessID uuid.UUID) (*entity.Business, error)

	// ResolveProject returns the project when it exists and its business
	// belongs to userID. Returns domain ErrProjectNotFound / ErrScopeOwnership
	// otherwise.
	ResolveProject(ctx context.Context, userID, projectID uuid.UUID) (*entity.Project, error)
}
