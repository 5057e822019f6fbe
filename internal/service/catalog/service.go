// Package catalog holds the business rules around marketplace listings:
// id and timestamp assignment, tag normalization and pagination metadata.
// Persistence is delegated to the injected repository.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
)

type CatalogServicer interface {
	ListServices(ctx context.Context, filter repository.ListFilter, page repository.PageParams) ([]*model.Service, repository.PageMeta, error)
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	CreateService(ctx context.Context, svc *model.Service) (*model.Service, error)
	ReplaceService(ctx context.Context, id uuid.UUID, svc *model.Service) (*model.Service, error)
	PatchService(ctx context.Context, id uuid.UUID, patch model.ServicePatch) (*model.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) (*model.Service, error)
}

type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListServices(ctx context.Context, filter repository.ListFilter, page repository.PageParams) ([]*model.Service, repository.PageMeta, error) {
	services, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, repository.PageMeta{}, fmt.Errorf("failed to list services: %w", err)
	}
	return services, repository.NewPageMeta(page.Page, page.Limit, total), nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

// CreateService assigns the id and both timestamps, then persists. A caller
// may supply its own id; collisions surface as repository.ErrDuplicateID.
func (s *Service) CreateService(ctx context.Context, svc *model.Service) (*model.Service, error) {
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	svc.Tags = model.NormalizeTags(svc.Tags)

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// ReplaceService overwrites every mutable field; createdAt is preserved by
// the repository.
func (s *Service) ReplaceService(ctx context.Context, id uuid.UUID, svc *model.Service) (*model.Service, error) {
	svc.ID = id
	svc.UpdatedAt = time.Now().UTC()
	svc.Tags = model.NormalizeTags(svc.Tags)

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) PatchService(ctx context.Context, id uuid.UUID, patch model.ServicePatch) (*model.Service, error) {
	return s.repo.Patch(ctx, id, patch)
}

// DeleteService removes the listing and returns its last state so the
// handler can echo it back as deletedService.
func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return svc, nil
}
