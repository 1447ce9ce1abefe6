package auth

import (
	"net/http"
	"strings"

	"github.com/AEP-2025/lms-service/internal/cache"
	"github.com/AEP-2025/lms-service/internal/models"
	"github.com/gin-gonic/gin"
)

// Gin context keys set by the session middleware.
const (
	ContextUserIDKey  = "user_id"
	ContextRoleKey    = "role"
	ContextTokenIDKey = "token_id"
)

// RevokedSessionKey builds the cache key marking a session token as revoked.
func RevokedSessionKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

// SessionMiddleware authenticates requests via the Authorization bearer
// token. Revoked tokens (logout) are rejected even before expiry.
func SessionMiddleware(tokens *TokenService, cacheSvc cache.CacheService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentication required",
			})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header must be a bearer token",
			})
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid or expired session",
			})
			return
		}

		revoked, err := cacheSvc.Exists(c.Request.Context(), RevokedSessionKey(claims.ID))
		if err == nil && revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Session has been logged out",
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Set(ContextTokenIDKey, claims.ID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the gin context.
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentRole returns the authenticated user's role from the gin context.
func CurrentRole(c *gin.Context) models.Role {
	if v, exists := c.Get(ContextRoleKey); exists {
		if role, ok := v.(models.Role); ok {
			return role
		}
	}
	return ""
}

// CurrentTokenID returns the session token ID from the gin context.
func CurrentTokenID(c *gin.Context) string {
	if v, exists := c.Get(ContextTokenIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
