// Package domain holds the item entity and its repository contract.
package domain

import "context"

// Item is a named entry in the in-memory collection.
type Item struct {
	ID   uint64 `json:"item_id"`
	Name string `json:"name"`
}

// ItemRepository is the storage contract for items. Implementations must be
// safe for concurrent use; durability is out of scope.
type ItemRepository interface {
	// Create stores a new item under a freshly assigned ID.
	Create(ctx context.Context, name string) (*Item, error)

	// Get returns the item by ID, or a not-found error.
	Get(ctx context.Context, id uint64) (*Item, error)

	// Update renames the item by ID, or returns a not-found error.
	Update(ctx context.Context, id uint64, name string) (*Item, error)

	// Delete removes the item by ID, or returns a not-found error.
	Delete(ctx context.Context, id uint64) error

	// List returns all items in ascending ID order.
	List(ctx context.Context) ([]*Item, error)
}
