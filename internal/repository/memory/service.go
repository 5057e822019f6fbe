// Package memory holds a mutex-guarded in-memory ServiceRepository. It is a
// development placeholder with the same semantics as the postgres
// implementation, and it backs the handler and catalog tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
)

type serviceRepository struct {
	mu       sync.RWMutex
	services map[uuid.UUID]*model.Service
}

func NewServiceRepository() repository.ServiceRepository {
	return &serviceRepository{services: make(map[uuid.UUID]*model.Service)}
}

func (r *serviceRepository) List(ctx context.Context, filter repository.ListFilter, page repository.PageParams) ([]*model.Service, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Service, 0, len(r.services))
	for _, svc := range r.services {
		if filter.Matches(svc) {
			matched = append(matched, svc)
		}
	}
	// Newest first, same order the postgres repository returns.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if page.Skip >= total {
		return []*model.Service{}, total, nil
	}
	end := page.Skip + page.Take
	if end > total {
		end = total
	}

	out := make([]*model.Service, 0, end-page.Skip)
	for _, svc := range matched[page.Skip:end] {
		out = append(out, svc.Clone())
	}
	return out, total, nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return svc.Clone(), nil
}

func (r *serviceRepository) Create(ctx context.Context, svc *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[svc.ID]; ok {
		return repository.ErrDuplicateID
	}
	r.services[svc.ID] = svc.Clone()
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, svc *model.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.services[svc.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := svc.Clone()
	updated.CreatedAt = existing.CreatedAt
	r.services[svc.ID] = updated
	return nil
}

func (r *serviceRepository) Patch(ctx context.Context, id uuid.UUID, patch model.ServicePatch) (*model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	updated := existing.Clone()
	patch.Apply(updated)
	updated.UpdatedAt = time.Now().UTC()
	r.services[id] = updated
	return updated.Clone(), nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.services, id)
	return nil
}
