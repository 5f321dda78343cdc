// Package store provides the in-memory item repository.
package store

import (
	"context"
	"sort"
	"strconv"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/pkg/errors"
	"github.com/openshelf/shelfd/pkg/logger"
)

// CacheStore keeps items in an in-process cache. IDs are assigned from an
// atomic sequence so deletes never cause ID reuse.
type CacheStore struct {
	cache  *gocache.Cache
	nextID atomic.Uint64
	log    logger.Logger
}

// NewCacheStore creates an empty item store. Entries never expire; the
// collection lives for the process lifetime.
func NewCacheStore(log logger.Logger) *CacheStore {
	return &CacheStore{
		cache: gocache.New(gocache.NoExpiration, 0),
		log:   log,
	}
}

func (s *CacheStore) Create(ctx context.Context, name string) (*domain.Item, error) {
	item := &domain.Item{
		ID:   s.nextID.Add(1),
		Name: name,
	}
	s.cache.Set(key(item.ID), item, gocache.NoExpiration)
	s.log.Debug(ctx, "item created", logger.Fields{"item_id": item.ID})
	return item, nil
}

func (s *CacheStore) Get(ctx context.Context, id uint64) (*domain.Item, error) {
	v, ok := s.cache.Get(key(id))
	if !ok {
		return nil, notFound(id)
	}
	item := v.(*domain.Item)
	return &domain.Item{ID: item.ID, Name: item.Name}, nil
}

func (s *CacheStore) Update(ctx context.Context, id uint64, name string) (*domain.Item, error) {
	if _, ok := s.cache.Get(key(id)); !ok {
		return nil, notFound(id)
	}
	item := &domain.Item{ID: id, Name: name}
	s.cache.Set(key(id), item, gocache.NoExpiration)
	s.log.Debug(ctx, "item updated", logger.Fields{"item_id": id})
	return &domain.Item{ID: id, Name: name}, nil
}

func (s *CacheStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := s.cache.Get(key(id)); !ok {
		return notFound(id)
	}
	s.cache.Delete(key(id))
	s.log.Debug(ctx, "item deleted", logger.Fields{"item_id": id})
	return nil
}

func (s *CacheStore) List(ctx context.Context) ([]*domain.Item, error) {
	entries := s.cache.Items()
	items := make([]*domain.Item, 0, len(entries))
	for _, entry := range entries {
		item := entry.Object.(*domain.Item)
		items = append(items, &domain.Item{ID: item.ID, Name: item.Name})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Len reports the number of stored items, used by health checks.
func (s *CacheStore) Len() int {
	return s.cache.ItemCount()
}

func key(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func notFound(id uint64) error {
	return errors.NewNotFound("Item with id %d not found", id)
}
