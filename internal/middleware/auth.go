package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venueflow/portal-backend/internal/common"
	"github.com/venueflow/portal-backend/pkg/jwt"
)

// JWTAuth verifies the admin bearer token issued by the identity provider
// and stores the admin principal on the request context
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", err)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", err)
			}
			c.Abort()
			return
		}

		// 4. Store admin info in context
		c.Set("adminID", claims.AdminID)
		c.Set("adminName", claims.Name)
		c.Set("level", claims.Level)

		c.Next()
	}
}

// GetAdminID extracts the admin ID from context
func GetAdminID(c *gin.Context) string {
	adminID, exists := c.Get("adminID")
	if !exists {
		return ""
	}
	if str, ok := adminID.(string); ok {
		return str
	}
	return ""
}

// GetAdminName extracts the admin display name from context
func GetAdminName(c *gin.Context) string {
	name, exists := c.Get("adminName")
	if !exists {
		return ""
	}
	if str, ok := name.(string); ok {
		return str
	}
	return ""
}

// GetAdminLevel extracts the admin role level from context
func GetAdminLevel(c *gin.Context) int {
	level, exists := c.Get("level")
	if !exists {
		return 0
	}
	if lvl, ok := level.(int); ok {
		return lvl
	}
	return 0
}
