package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/middleware"
	"github.com/venueflow/portal-backend/pkg/ginutil"
)

// ActivityHandler exposes the CMS audit trail to admins
type ActivityHandler struct {
	activity *middleware.ActivityLogger
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activity *middleware.ActivityLogger) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// List handles GET /api/cms/activity?admin_id=&action=&page=&per_page=
func (h *ActivityHandler) List(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ginutil.QueryInt(c, "per_page", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	logs, total, err := h.activity.List(c.Request.Context(),
		c.Query("admin_id"), c.Query("action"), page, perPage)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list activity", err)
		return
	}

	common.SuccessWithMeta(c, logs, common.NewMeta(page, perPage, total))
}
