package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/service"
)

// PublicHandler serves published content to the onboarding portal.
// Draft content is indistinguishable from missing content here.
type PublicHandler struct {
	content *service.ContentService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(content *service.ContentService) *PublicHandler {
	return &PublicHandler{content: content}
}

// GetByKey handles GET /api/content/:key
func (h *PublicHandler) GetByKey(c *gin.Context) {
	item, err := h.content.PublishedByKey(c.Param("key"))
	if err != nil {
		writeServiceError(c, err, "Content not found")
		return
	}
	common.SuccessResponse(c, item)
}

// Bulk handles GET /api/content?keys=a,b,c
// Returns a map keyed by content key; unpublished or unknown keys are
// silently absent.
func (h *PublicHandler) Bulk(c *gin.Context) {
	raw := c.Query("keys")
	if raw == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing keys parameter", nil)
		return
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing keys parameter", nil)
		return
	}

	items, err := h.content.PublishedByKeys(keys)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load content", err)
		return
	}
	common.SuccessResponse(c, items)
}
