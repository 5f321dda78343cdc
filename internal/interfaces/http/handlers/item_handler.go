// Package handlers contains the Gin HTTP handlers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/shelfd/internal/application/dto"
	"github.com/openshelf/shelfd/internal/application/service"
	"github.com/openshelf/shelfd/pkg/errors"
	"github.com/openshelf/shelfd/pkg/logger"
)

// ItemHandler serves the item CRUD routes.
type ItemHandler struct {
	items service.ItemAppService
	log   logger.Logger
}

// NewItemHandler creates the item handler.
func NewItemHandler(items service.ItemAppService, log logger.Logger) *ItemHandler {
	return &ItemHandler{items: items, log: log}
}

// Index serves GET /.
func (h *ItemHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Hello, world!")
}

// CreateItem serves POST /items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn(c.Request.Context(), "invalid create item request", logger.Fields{"error": err.Error()})
		dto.SendError(c, errors.NewInvalidRequest("name is required"))
		return
	}

	resp, err := h.items.CreateItem(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetItem serves GET /items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	resp, err := h.items.GetItem(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateItem serves PUT /items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn(c.Request.Context(), "invalid update item request", logger.Fields{"error": err.Error()})
		dto.SendError(c, errors.NewInvalidRequest("name is required"))
		return
	}

	resp, err := h.items.UpdateItem(c.Request.Context(), id, &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteItem serves DELETE /items/:id.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	id, ok := h.itemID(c)
	if !ok {
		return
	}

	resp, err := h.items.DeleteItem(c.Request.Context(), id)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListItems serves GET /items.
func (h *ItemHandler) ListItems(c *gin.Context) {
	resp, err := h.items.ListItems(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *ItemHandler) itemID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		dto.SendError(c, errors.NewInvalidRequest("item id must be a positive integer"))
		return 0, false
	}
	return id, true
}
