package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/middleware"
	"github.com/venueflow/portal-backend/internal/service"
	"github.com/venueflow/portal-backend/pkg/ginutil"
)

// VersionHandler handles version history and restore endpoints
type VersionHandler struct {
	versions *service.VersionService
	activity *middleware.ActivityLogger
	cache    *redis.Client
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(versions *service.VersionService, activity *middleware.ActivityLogger, cache *redis.Client) *VersionHandler {
	return &VersionHandler{versions: versions, activity: activity, cache: cache}
}

// List handles GET /api/cms/content/:id/versions
func (h *VersionHandler) List(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	versions, err := h.versions.List(id)
	if err != nil {
		writeServiceError(c, err, "Failed to list versions")
		return
	}
	common.SuccessResponse(c, versions)
}

// Restore handles POST /api/cms/content/:id/restore/:versionId
func (h *VersionHandler) Restore(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}
	versionID, err := ginutil.ParamUint64(c, "versionId")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", err)
		return
	}

	adminID := middleware.GetAdminID(c)
	item, err := h.versions.Restore(id, versionID, adminID)
	if err != nil {
		writeServiceError(c, err, "Failed to restore version")
		return
	}

	if item.IsPublished {
		middleware.InvalidatePublicContent(h.cache)
	}

	h.activity.Record(c, adminID, "content_item.restore", "content_item",
		fmt.Sprintf("%d", item.ID), fmt.Sprintf("restored version %d", versionID))
	common.SuccessResponse(c, item)
}
