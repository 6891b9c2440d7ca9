package middleware

import (
	"net/http"
	"strings"

	"learning-service/internal/models"
	"learning-service/internal/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	KeyUserID    = "userId"
	KeyRole      = "role"
	KeyCompanyID = "companyId"
)

// Auth validates the bearer token and stores its claims on the request
// context.
func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyCompanyID, claims.CompanyID)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role is not in the allow
// list. It must run after Auth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(KeyRole)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

// UserID returns the authenticated user id from the context.
func UserID(c *gin.Context) string {
	return c.GetString(KeyUserID)
}

// CompanyID returns the authenticated user's company id from the context.
func CompanyID(c *gin.Context) string {
	return c.GetString(KeyCompanyID)
}

// Claims rebuilds the token claims from the context for services that need
// the whole identity.
func Claims(c *gin.Context) *service.Claims {
	role, _ := c.Get(KeyRole)
	r, _ := role.(models.Role)
	return &service.Claims{
		UserID:    c.GetString(KeyUserID),
		Role:      r,
		CompanyID: c.GetString(KeyCompanyID),
	}
}
