// Package dto holds the request/response shapes of the HTTP API.
package dto

// ItemRequest is the body of create and update requests.
type ItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// ItemResponse is the body returned for item operations. Status is set on
// mutations ("created", "updated", "deleted") and omitted on reads.
type ItemResponse struct {
	ItemID uint64 `json:"item_id"`
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
}

const (
	StatusCreated = "created"
	StatusUpdated = "updated"
	StatusDeleted = "deleted"
)
