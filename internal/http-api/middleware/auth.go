package middleware

import (
	"net/http"
	"strings"

	"gamereviews/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	KeyClaims      = "claims"
	KeyUserID      = "userID"
	KeyIsSuperuser = "isSuperuser"
)

// TokenValidator is the part of service.AuthService the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// AuthMiddleware checks the bearer token and stores the caller in the gin context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyIsSuperuser, claims.IsSuperuser)
		c.Next()
	}
}

// RequireSuperuser must run after AuthMiddleware.
func RequireSuperuser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(KeyIsSuperuser) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "superuser access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, or "" outside AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(KeyUserID)
}
