package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpsquare/marketplace-api/internal/model"
	"github.com/mcpsquare/marketplace-api/internal/repository"
	"github.com/mcpsquare/marketplace-api/internal/repository/memory"
)

func newCatalog() *Service {
	return NewService(memory.NewServiceRepository())
}

func draftService(title string) *model.Service {
	return &model.Service{
		Title:    title,
		Summary:  "summary",
		Category: "AI",
		Tags:     []string{"ai"},
		Pricing:  "Free",
		Status:   model.StatusDraft,
	}
}

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, draftService("Image Recognition"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateKeepsCallerSuppliedID(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	id := uuid.New()
	input := draftService("Image Recognition")
	input.ID = id

	created, err := svc.CreateService(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, id, created.ID)

	// Same id again collides.
	dup := draftService("Other")
	dup.ID = id
	_, err = svc.CreateService(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateID)
}

func TestCreateNormalizesTags(t *testing.T) {
	svc := newCatalog()

	input := draftService("Image Recognition")
	input.Tags = []string{" vision ", "vision", "", "ml"}
	created, err := svc.CreateService(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, []string{"vision", "ml"}, created.Tags)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, draftService("Image Recognition"))
	require.NoError(t, err)

	got, err := svc.GetService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestListComputesPageMeta(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.CreateService(ctx, draftService("Service"))
		require.NoError(t, err)
	}

	services, meta, err := svc.ListServices(ctx, repository.ListFilter{}, repository.NewPageParams(1, 10))
	require.NoError(t, err)
	assert.Len(t, services, 2)
	assert.Equal(t, 2, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNextPage)
	assert.False(t, meta.HasPrevPage)
}

func TestReplacePreservesCreatedAt(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, draftService("Old"))
	require.NoError(t, err)

	replacement := draftService("New")
	updated, err := svc.ReplaceService(ctx, created.ID, replacement)
	require.NoError(t, err)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestReplaceNotFound(t *testing.T) {
	svc := newCatalog()
	_, err := svc.ReplaceService(context.Background(), uuid.New(), draftService("New"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPatchLeavesOtherFields(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, draftService("Image Recognition"))
	require.NoError(t, err)

	status := model.StatusActive
	updated, err := svc.PatchService(ctx, created.ID, model.ServicePatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.StatusActive, updated.Status)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Summary, updated.Summary)
	assert.Equal(t, created.Category, updated.Category)
}

func TestDeleteReturnsLastState(t *testing.T) {
	svc := newCatalog()
	ctx := context.Background()

	created, err := svc.CreateService(ctx, draftService("Image Recognition"))
	require.NoError(t, err)

	deleted, err := svc.DeleteService(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = svc.GetService(ctx, created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
