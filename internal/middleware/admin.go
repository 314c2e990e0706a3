package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/internal/common"
)

// Role levels carried in the admin JWT. Editors write copy; admins may
// also delete, publish and manage content types.
const (
	LevelEditor = 5
	LevelAdmin  = 10
)

// RequireEditor checks that the authenticated admin may edit content
func RequireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAdminLevel(c) < LevelEditor {
			common.ErrorResponse(c, http.StatusForbidden, "Editor role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin checks that the authenticated admin has the elevated role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetAdminLevel(c) < LevelAdmin {
			common.ErrorResponse(c, http.StatusForbidden, "Admin role required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
