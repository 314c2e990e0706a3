package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/domain"
	"github.com/venueflow/portal-backend/internal/middleware"
	"github.com/venueflow/portal-backend/internal/service"
	"github.com/venueflow/portal-backend/pkg/ginutil"
)

// ContentHandler handles the admin CMS content endpoints
type ContentHandler struct {
	content  *service.ContentService
	activity *middleware.ActivityLogger
	cache    *redis.Client
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(content *service.ContentService, activity *middleware.ActivityLogger, cache *redis.Client) *ContentHandler {
	return &ContentHandler{content: content, activity: activity, cache: cache}
}

// ListTypes handles GET /api/cms/content-types
func (h *ContentHandler) ListTypes(c *gin.Context) {
	types, err := h.content.ListActiveTypes()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list content types", err)
		return
	}
	common.SuccessResponse(c, types)
}

// CreateType handles POST /api/cms/content-types
func (h *ContentHandler) CreateType(c *gin.Context) {
	var req struct {
		Name        string         `json:"name" binding:"required"`
		DisplayName string         `json:"display_name" binding:"required"`
		Description *string        `json:"description"`
		Schema      domain.JSONMap `json:"schema"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ct := &domain.ContentType{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Schema:      req.Schema,
		IsActive:    true,
	}
	if err := h.content.CreateType(ct); err != nil {
		writeServiceError(c, err, "Failed to create content type")
		return
	}

	h.activity.Record(c, middleware.GetAdminID(c), "content_type.create", "content_type",
		fmt.Sprintf("%d", ct.ID), ct.Name)
	common.CreatedResponse(c, ct)
}

// UpdateType handles PUT /api/cms/content-types/:id
func (h *ContentHandler) UpdateType(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content type ID", err)
		return
	}

	var req struct {
		DisplayName *string        `json:"display_name"`
		Description *string        `json:"description"`
		Schema      domain.JSONMap `json:"schema"`
		IsActive    *bool          `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// Load-modify-save keeps untouched fields intact
	ct, err := h.content.GetType(id)
	if err != nil {
		writeServiceError(c, err, "Content type not found")
		return
	}
	if req.DisplayName != nil {
		ct.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		ct.Description = req.Description
	}
	if req.Schema != nil {
		ct.Schema = req.Schema
	}
	if req.IsActive != nil {
		ct.IsActive = *req.IsActive
	}

	if err := h.content.UpdateType(ct); err != nil {
		writeServiceError(c, err, "Failed to update content type")
		return
	}

	h.activity.Record(c, middleware.GetAdminID(c), "content_type.update", "content_type",
		fmt.Sprintf("%d", ct.ID), ct.Name)
	common.SuccessResponse(c, ct)
}

// List handles GET /api/cms/content?type=<name>
func (h *ContentHandler) List(c *gin.Context) {
	items, err := h.content.List(c.Query("type"))
	if err != nil {
		writeServiceError(c, err, "Failed to list content")
		return
	}
	common.SuccessResponse(c, items)
}

// GetByKey handles GET /api/cms/content/:id
// The content subtree shares one :id wildcard; on this route it carries
// the item key.
func (h *ContentHandler) GetByKey(c *gin.Context) {
	item, err := h.content.GetByKey(c.Param("id"))
	if err != nil {
		writeServiceError(c, err, "Content not found")
		return
	}
	common.SuccessResponse(c, item)
}

// Create handles POST /api/cms/content
func (h *ContentHandler) Create(c *gin.Context) {
	var req struct {
		Key           string         `json:"key" binding:"required"`
		ContentTypeID uint64         `json:"content_type_id" binding:"required"`
		Title         string         `json:"title" binding:"required"`
		Content       domain.JSONMap `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	adminID := middleware.GetAdminID(c)
	item, err := h.content.Create(service.CreateItemInput{
		Key:           req.Key,
		ContentTypeID: req.ContentTypeID,
		Title:         req.Title,
		Content:       req.Content,
	}, adminID)
	if err != nil {
		writeServiceError(c, err, "Failed to create content")
		return
	}

	h.activity.Record(c, adminID, "content_item.create", "content_item",
		fmt.Sprintf("%d", item.ID), item.Key)
	common.CreatedResponse(c, item)
}

// Update handles PUT /api/cms/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	var req struct {
		Title             *string        `json:"title"`
		ContentTypeID     *uint64        `json:"content_type_id"`
		Content           domain.JSONMap `json:"content"`
		ChangeDescription string         `json:"change_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	adminID := middleware.GetAdminID(c)
	item, err := h.content.Update(id, service.UpdateItemInput{
		Title:             req.Title,
		ContentTypeID:     req.ContentTypeID,
		Content:           req.Content,
		ChangeDescription: req.ChangeDescription,
	}, adminID)
	if err != nil {
		writeServiceError(c, err, "Failed to update content")
		return
	}

	// Published content may have changed shape; drop cached public reads
	if item.IsPublished {
		middleware.InvalidatePublicContent(h.cache)
	}

	h.activity.Record(c, adminID, "content_item.update", "content_item",
		fmt.Sprintf("%d", item.ID), item.Key)
	common.SuccessResponse(c, item)
}

// Delete handles DELETE /api/cms/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	deleted, err := h.content.Delete(id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete content", err)
		return
	}

	if deleted {
		middleware.InvalidatePublicContent(h.cache)
		h.activity.Record(c, middleware.GetAdminID(c), "content_item.delete", "content_item",
			fmt.Sprintf("%d", id), "")
	}
	common.SuccessResponse(c, gin.H{"deleted": deleted})
}

// Publish handles POST /api/cms/content/:id/publish
func (h *ContentHandler) Publish(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	adminID := middleware.GetAdminID(c)
	item, err := h.content.Publish(id, adminID)
	if err != nil {
		writeServiceError(c, err, "Failed to publish content")
		return
	}

	middleware.InvalidatePublicContent(h.cache)
	h.activity.Record(c, adminID, "content_item.publish", "content_item",
		fmt.Sprintf("%d", item.ID), item.Key)
	common.SuccessResponse(c, item)
}

// Unpublish handles POST /api/cms/content/:id/unpublish
func (h *ContentHandler) Unpublish(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	adminID := middleware.GetAdminID(c)
	item, err := h.content.Unpublish(id, adminID)
	if err != nil {
		writeServiceError(c, err, "Failed to unpublish content")
		return
	}

	middleware.InvalidatePublicContent(h.cache)
	h.activity.Record(c, adminID, "content_item.unpublish", "content_item",
		fmt.Sprintf("%d", item.ID), item.Key)
	common.SuccessResponse(c, item)
}
