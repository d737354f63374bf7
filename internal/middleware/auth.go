package middleware

import (
	"net/http"
	"strings"

	"guidehub_backend/internal/auth"
	"guidehub_backend/internal/logger"
	"guidehub_backend/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserIDKey = "userID"
	ctxRoleKey   = "role"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves identity when a token is present but lets
// anonymous requests through. Public guide reads use it for premium gating.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := auth.ParseToken(tokenStr); err == nil {
				c.Set(ctxUserIDKey, claims.UserID)
				c.Set(ctxRoleKey, claims.Role)
			}
		}
		c.Next()
	}
}

// RoleMiddleware rejects callers whose token does not carry the required role.
func RoleMiddleware(requiredRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ctxRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient permissions"})
			return
		}

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return ""
	}
	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}

// GetRole extracts the authenticated role, empty for anonymous callers.
func GetRole(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get(ctxRoleKey)
	if !exists {
		return ""
	}
	switch role := roleVal.(type) {
	case models.UserRole:
		return role
	case string:
		return models.UserRole(role)
	}
	return ""
}
