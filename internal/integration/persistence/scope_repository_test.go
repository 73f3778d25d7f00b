package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/ledgerkit/backend/internal/domain/error"
	"github.com/ledgerkit/backend/internal/integration/persistence/model"
)

func TestScopeRepositoryResolveBusiness(t *testing.T) {
	db := openTestDB(t)
	resolver := NewScopeRepository(db)
	ctx := context.Background()

	ownerID := seedUser(t, db, "owner@example.com")
	strangerID := seedUser(t, db, "stranger@example.com")
	businessID := seedBusiness(t, db, ownerID, "USD")

	t.Run("resolves owned business", func(t *testing.T) {
		business, err := resolver.ResolveBusiness(ctx, ownerID, businessID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if business.ID != businessID {
			t.Errorf("expected business %s, got %s", businessID, business.ID)
		}
		if business.ResolvedCurrency() != "USD" {
			t.Errorf("expected currency USD, got %s", business.ResolvedCurrency())
		}
	})

	t.Run("unknown business", func(t *testing.T) {
		_, err := resolver.ResolveBusiness(ctx, ownerID, uuid.New())
		if !errors.Is(err, domainerror.ErrBusinessNotFound) {
			t.Errorf("expected ErrBusinessNotFound, got %v", err)
		}
	})

	t.Run("business owned by another user", func(t *testing.T) {
		_, err := resolver.ResolveBusiness(ctx, strangerID, businessID)
		if !errors.Is(err, domainerror.ErrScopeOwnership) {
			t.Errorf("expected ErrScopeOwnership, got %v", err)
		}
	})
}

func TestScopeRepositoryResolveProject(t *testing.T) {
	db := openTestDB(t)
	resolver := NewScopeRepository(db)
	ctx := context.Background()

	ownerID := seedUser(t, db, "owner@example.com")
	strangerID := seedUser(t, db, "stranger@example.com")
	businessID := seedBusiness(t, db, ownerID, "EUR")

	projectID := uuid.New()
	err := db.Create(&model.ProjectModel{
		ID:         projectID,
		BusinessID: businessID,
		Name:       "Rebrand",
		Status:     "active",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}).Error
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}

	t.Run("resolves owned project", func(t *testing.T) {
		project, err := resolver.ResolveProject(ctx, ownerID, projectID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if project.ID != projectID {
			t.Errorf("expected project %s, got %s", projectID, project.ID)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := resolver.ResolveProject(ctx, ownerID, uuid.New())
		if !errors.Is(err, domainerror.ErrProjectNotFound) {
			t.Errorf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("project owned by another user", func(t *testing.T) {
		_, err := resolver.ResolveProject(ctx, strangerID, projectID)
		if !errors.Is(err, domainerror.ErrScopeOwnership) {
			t.Errorf("expected ErrScopeOwnership, got %v", err)
		}
	})
}
