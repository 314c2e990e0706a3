package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/internal/middleware"
	"github.com/venueflow/portal-backend/internal/service"
	"github.com/venueflow/portal-backend/pkg/ginutil"
)

// LockHandler handles the content edit-lock endpoints
type LockHandler struct {
	locks    *service.LockService
	activity *middleware.ActivityLogger
}

// NewLockHandler creates a new LockHandler
func NewLockHandler(locks *service.LockService, activity *middleware.ActivityLogger) *LockHandler {
	return &LockHandler{locks: locks, activity: activity}
}

// Acquire handles POST /api/cms/content/:id/lock
// Responds 409 with holder details when another admin holds the lock.
func (h *LockHandler) Acquire(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	var req struct {
		DurationMinutes int `json:"duration_minutes"`
	}
	// Body is optional; default duration applies
	_ = c.ShouldBindJSON(&req)

	adminID := middleware.GetAdminID(c)
	lock, err := h.locks.Acquire(id, adminID, middleware.GetAdminName(c),
		time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		var conflict *common.LockConflictError
		if errors.As(err, &conflict) {
			middleware.CountLockConflict()
			common.ErrorResponseWithDetails(c, http.StatusConflict,
				"Content is already locked by another admin", gin.H{
					"locked_by":      conflict.LockedBy,
					"locked_by_name": conflict.LockedByName,
					"expires_at":     conflict.ExpiresAt,
				})
			return
		}
		writeServiceError(c, err, "Failed to acquire lock")
		return
	}

	h.activity.Record(c, adminID, "lock.acquire", "content_item",
		fmt.Sprintf("%d", id), "")
	common.SuccessResponse(c, lock)
}

// Status handles GET /api/cms/content/:id/lock
func (h *LockHandler) Status(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid content ID", err)
		return
	}

	lock, err := h.locks.Status(id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to read lock status", err)
		return
	}
	if lock == nil {
		common.SuccessResponse(c, gin.H{"locked": false})
		return
	}
	// Never expose the token to anyone but the holder
	resp := gin.H{
		"locked":         true,
		"locked_by":      lock.LockedBy,
		"locked_by_name": lock.LockedByName,
		"expires_at":     lock.ExpiresAt,
	}
	common.SuccessResponse(c, resp)
}

// Release handles DELETE /api/cms/content/lock/:lockToken
func (h *LockHandler) Release(c *gin.Context) {
	adminID := middleware.GetAdminID(c)
	released, err := h.locks.Release(c.Param("lockToken"), adminID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to release lock", err)
		return
	}

	if released {
		h.activity.Record(c, adminID, "lock.release", "content_lock", c.Param("lockToken"), "")
	}
	common.SuccessResponse(c, gin.H{"released": released})
}

// Renew handles PUT /api/cms/content/lock/:lockToken/renew
func (h *LockHandler) Renew(c *gin.Context) {
	var req struct {
		DurationMinutes int `json:"duration_minutes"`
	}
	_ = c.ShouldBindJSON(&req)

	adminID := middleware.GetAdminID(c)
	lock, err := h.locks.Renew(c.Param("lockToken"), adminID,
		time.Duration(req.DurationMinutes)*time.Minute)
	if err != nil {
		writeServiceError(c, err, "Failed to renew lock")
		return
	}

	common.SuccessResponse(c, lock)
}
