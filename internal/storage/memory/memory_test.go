package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage/memory"
)

func orderFixture(id string, createdAt time.Time) model.Order {
	return model.Order{
		ID:             id,
		Customer:       "Kowalski sp. z o.o.",
		Kind:           "installation",
		Status:         "new",
		RequiresReview: true,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func newRepo(t *testing.T) *memory.Repository {
	t.Helper()
	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(t, err)
	return repo
}

func TestRepositoryCRUD(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	o := orderFixture("id-1", now)
	require.NoError(repo.CreateOrder(ctx, o))

	// Duplicate IDs are rejected.
	err := repo.CreateOrder(ctx, o)
	assert.ErrorIs(err, model.ErrAlreadyExists)

	got, err := repo.GetOrder(ctx, "id-1")
	require.NoError(err)
	assert.Equal("Kowalski sp. z o.o.", got.Customer)
	assert.True(got.RequiresReview)

	// Update and read back.
	got.Status = "confirmed"
	got.NoteLog = "Status: Confirmed (05.03.2026 14:30)|ok — Jan"
	got.RequiresReview = false
	require.NoError(repo.UpdateOrder(ctx, *got))

	updated, err := repo.GetOrder(ctx, "id-1")
	require.NoError(err)
	assert.Equal("confirmed", updated.Status)
	assert.Equal(got.NoteLog, updated.NoteLog)
	assert.False(updated.RequiresReview)

	require.NoError(repo.DeleteOrder(ctx, "id-1"))
	_, err = repo.GetOrder(ctx, "id-1")
	assert.ErrorIs(err, model.ErrNotFound)
}

func TestRepositoryNotFound(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.GetOrder(ctx, "missing")
	assert.True(errors.Is(err, model.ErrNotFound))

	assert.ErrorIs(repo.UpdateOrder(ctx, model.Order{ID: "missing"}), model.ErrNotFound)
	assert.ErrorIs(repo.DeleteOrder(ctx, "missing"), model.ErrNotFound)
	assert.ErrorIs(repo.CancelDocument(ctx, "missing"), model.ErrNotFound)
	assert.ErrorIs(repo.CreateDocument(ctx, model.Document{ID: "d-1", OrderID: "missing"}), model.ErrNotFound)
}

func TestRepositoryListOrders(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	require.NoError(repo.CreateOrder(ctx, orderFixture("id-old", now.Add(-time.Hour))))
	require.NoError(repo.CreateOrder(ctx, orderFixture("id-new", now)))

	orders, err := repo.ListOrders(ctx)
	require.NoError(err)
	require.Len(orders, 2)

	// Newest first.
	assert.Equal("id-new", orders[0].ID)
	assert.Equal("id-old", orders[1].ID)
}

func TestRepositoryDocuments(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	require.NoError(repo.CreateOrder(ctx, orderFixture("id-1", now)))

	doc := model.Document{
		ID:        "doc-1",
		OrderID:   "id-1",
		Kind:      model.DocumentKindInvoice,
		FileRef:   "/files/inv-1.pdf",
		CreatedAt: now,
	}
	require.NoError(repo.CreateDocument(ctx, doc))
	assert.ErrorIs(repo.CreateDocument(ctx, doc), model.ErrAlreadyExists)

	got, err := repo.GetOrder(ctx, "id-1")
	require.NoError(err)
	require.Len(got.Documents, 1)
	assert.Equal(model.DocumentKindInvoice, got.Documents[0].Kind)
	assert.False(got.Documents[0].Cancelled)

	require.NoError(repo.CancelDocument(ctx, "doc-1"))
	got, err = repo.GetOrder(ctx, "id-1")
	require.NoError(err)
	assert.True(got.Documents[0].Cancelled)
}

func TestRepositoryReturnsCopies(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	ctx := context.Background()
	repo := newRepo(t)
	now := time.Now().UTC()

	o := orderFixture("id-1", now)
	o.TaskOverrides = map[string]bool{"shipping/shipment-sent": false}
	require.NoError(repo.CreateOrder(ctx, o))

	// Mutating what we got back must not leak into the store.
	got, err := repo.GetOrder(ctx, "id-1")
	require.NoError(err)
	got.TaskOverrides["shipping/shipment-sent"] = true

	again, err := repo.GetOrder(ctx, "id-1")
	require.NoError(err)
	assert.False(again.TaskOverrides["shipping/shipment-sent"])
}
