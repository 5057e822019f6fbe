package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
)

func newService(title, category string, tags []string, createdAt time.Time) *model.Service {
	return &model.Service{
		ID:        uuid.New(),
		Title:     title,
		Summary:   "summary for " + title,
		Category:  category,
		Tags:      tags,
		Pricing:   "Free",
		Status:    model.StatusDraft,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Image Recognition", "AI", []string{"vision"}, time.Now())
	require.NoError(t, repo.Create(ctx, svc))

	got, err := repo.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc, got)
}

func TestCreateDuplicateID(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Image Recognition", "AI", nil, time.Now())
	require.NoError(t, repo.Create(ctx, svc))

	dup := newService("Other", "AI", nil, time.Now())
	dup.ID = svc.ID
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestGetNotFound(t *testing.T) {
	repo := NewServiceRepository()
	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()
	base := time.Now()

	older := newService("Older", "AI", nil, base.Add(-time.Hour))
	newer := newService("Newer", "AI", nil, base)
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	services, total, err := repo.List(ctx, repository.ListFilter{}, repository.NewPageParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, services, 2)
	assert.Equal(t, "Newer", services[0].Title)
	assert.Equal(t, "Older", services[1].Title)
}

func TestListPagination(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		svc := newService("Service", "AI", nil, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, svc))
	}

	services, total, err := repo.List(ctx, repository.ListFilter{}, repository.NewPageParams(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, services, 2)

	services, total, err = repo.List(ctx, repository.ListFilter{}, repository.NewPageParams(4, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, services)
}

func TestListFiltered(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newService("Image Recognition", "AI", []string{"vision"}, now)))
	require.NoError(t, repo.Create(ctx, newService("Catalog Enrichment", "Data", []string{"catalog"}, now)))

	services, total, err := repo.List(ctx, repository.NewListFilter("AI", ""), repository.NewPageParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, services, 1)
	assert.Equal(t, "Image Recognition", services[0].Title)

	services, total, err = repo.List(ctx, repository.NewListFilter("", "catalog"), repository.NewPageParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, services, 1)
	assert.Equal(t, "Catalog Enrichment", services[0].Title)
}

func TestUpdateReplacesFields(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Old Title", "AI", []string{"a"}, time.Now())
	require.NoError(t, repo.Create(ctx, svc))

	replacement := svc.Clone()
	replacement.Title = "New Title"
	replacement.Tags = []string{"b"}
	replacement.UpdatedAt = svc.UpdatedAt.Add(time.Second)
	require.NoError(t, repo.Update(ctx, replacement))

	got, err := repo.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Title", got.Title)
	assert.Equal(t, []string{"b"}, got.Tags)
	assert.Equal(t, svc.CreatedAt, got.CreatedAt)
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewServiceRepository()
	svc := newService("Missing", "AI", nil, time.Now())
	err := repo.Update(context.Background(), svc)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPatchOnlySuppliedFields(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Image Recognition", "AI", []string{"vision"}, time.Now().Add(-time.Minute))
	require.NoError(t, repo.Create(ctx, svc))

	status := model.StatusActive
	got, err := repo.Patch(ctx, svc.ID, model.ServicePatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.StatusActive, got.Status)
	assert.Equal(t, svc.Title, got.Title)
	assert.Equal(t, svc.Summary, got.Summary)
	assert.Equal(t, svc.Category, got.Category)
	assert.True(t, got.UpdatedAt.After(svc.UpdatedAt))
}

func TestPatchRenormalizesTags(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Image Recognition", "AI", []string{"vision"}, time.Now())
	require.NoError(t, repo.Create(ctx, svc))

	got, err := repo.Patch(ctx, svc.ID, model.ServicePatch{Tags: []string{" a ", "b", "a", ""}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
}

func TestDeleteThenGet(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Image Recognition", "AI", nil, time.Now())
	require.NoError(t, repo.Create(ctx, svc))
	require.NoError(t, repo.Delete(ctx, svc.ID))

	_, err := repo.Get(ctx, svc.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, svc.ID), repository.ErrNotFound)
}

func TestStoredStateIsIsolated(t *testing.T) {
	repo := NewServiceRepository()
	ctx := context.Background()

	svc := newService("Image Recognition", "AI", []string{"vision"}, time.Now())
	require.NoError(t, repo.Create(ctx, svc))

	// Mutating the caller's copy must not affect the stored record.
	svc.Title = "mutated"
	svc.Tags[0] = "mutated"

	got, err := repo.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Image Recognition", got.Title)
	assert.Equal(t, []string{"vision"}, got.Tags)
}
