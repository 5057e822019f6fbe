package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mcpsquare/marketplace-api/internal/model"
)

// Sentinel errors shared by every ServiceRepository implementation. Callers
// distinguish them with errors.Is; anything else is an infrastructure failure.
var (
	ErrNotFound    = errors.New("service not found")
	ErrDuplicateID = errors.New("service id already exists")
)

// ServiceRepository is the persistence contract for marketplace listings.
// Two implementations exist: postgres (production) and memory (development
// placeholder and tests). Both list newest-first.
type ServiceRepository interface {
	// List returns one page of services matching the filter plus the total
	// number of matches across all pages.
	List(ctx context.Context, filter ListFilter, page PageParams) ([]*model.Service, int, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	// Create persists a fully populated service and fails with
	// ErrDuplicateID when the id is already taken.
	Create(ctx context.Context, svc *model.Service) error
	// Update replaces all mutable fields of an existing service.
	Update(ctx context.Context, svc *model.Service) error
	// Patch merges only the supplied fields and returns the updated row.
	Patch(ctx context.Context, id uuid.UUID, patch model.ServicePatch) (*model.Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
