package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/shelfd/internal/application/dto"
	"github.com/openshelf/shelfd/internal/infrastructure/store"
	"github.com/openshelf/shelfd/pkg/logger"
)

func newService() ItemAppService {
	log := logger.NewNoopLogger()
	return NewItemAppService(store.NewCacheStore(log), log)
}

func TestItemLifecycle(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &dto.ItemRequest{Name: "widget"})
	require.NoError(t, err)
	assert.Equal(t, &dto.ItemResponse{ItemID: 1, Name: "widget", Status: dto.StatusCreated}, created)

	got, err := svc.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &dto.ItemResponse{ItemID: 1, Name: "widget"}, got)

	updated, err := svc.UpdateItem(ctx, 1, &dto.ItemRequest{Name: "gadget"})
	require.NoError(t, err)
	assert.Equal(t, &dto.ItemResponse{ItemID: 1, Name: "gadget", Status: dto.StatusUpdated}, updated)

	deleted, err := svc.DeleteItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &dto.ItemResponse{ItemID: 1, Status: dto.StatusDeleted}, deleted)

	_, err = svc.GetItem(ctx, 1)
	assert.Error(t, err)
}

func TestListItems(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.CreateItem(ctx, &dto.ItemRequest{Name: "a"})
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, &dto.ItemRequest{Name: "b"})
	require.NoError(t, err)

	items, err = svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)
}
